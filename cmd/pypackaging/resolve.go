package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	pypackaging "github.com/pyembed/go-pypackaging"
	"github.com/pyembed/go-pypackaging/lockfile"
	"github.com/pyembed/go-pypackaging/manifest"
	"github.com/pyembed/go-pypackaging/starconf"
	"github.com/pyembed/go-pypackaging/triple"
)

var resolveFlags struct {
	policyFile   string
	manifestFile string
	target       string
	lockfilePath string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a manifest against a packaging policy",
	Long: `Resolve evaluates the policy's resource inclusion rules against every
resource in the manifest, and runs extension module variant resolution for
the given target triple.

Without --policy, the default policy applies (all extensions, in-memory
resource loading, distribution sources included, package resources and test
modules excluded).

Examples:
  # Resolve with an explicit policy
  pypackaging resolve --policy policy.bzl --manifest dist.yaml --target x86_64-unknown-linux-gnu

  # Record the outcome for later diffing
  pypackaging resolve --manifest dist.yaml --target aarch64-apple-darwin --lockfile packaging.lock.json`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveFlags.policyFile, "policy", "p", "", "Starlark policy file")
	resolveCmd.Flags().StringVarP(&resolveFlags.manifestFile, "manifest", "m", "", "distribution manifest (YAML)")
	resolveCmd.Flags().StringVarP(&resolveFlags.target, "target", "t", "", "target triple (e.g. x86_64-unknown-linux-gnu)")
	resolveCmd.Flags().StringVar(&resolveFlags.lockfilePath, "lockfile", "", "write a resolution snapshot to this path")

	resolveCmd.MarkFlagRequired("manifest")
	resolveCmd.MarkFlagRequired("target")
}

func runResolve(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	target, err := triple.New(resolveFlags.target)
	if err != nil {
		return err
	}

	policy := pypackaging.NewPackagingPolicy()
	if resolveFlags.policyFile != "" {
		policy, err = starconf.LoadFile(resolveFlags.policyFile)
		if err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
		logger.Debug("loaded policy", "file", resolveFlags.policyFile,
			"filter", policy.ExtensionModuleFilter(), "resources", policy.ResourcesPolicy())
	}

	m, err := manifest.Load(resolveFlags.manifestFile)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	resources, err := m.ResourceList()
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	included := 0
	for _, resource := range resources {
		if policy.AllowResource(resource) {
			included++
			fmt.Fprintf(cmd.OutOrStdout(), "resource %s\n", describeResource(resource))
		}
	}
	logger.Info("resources evaluated", "total", len(resources), "included", included)

	extensions := policy.ResolveExtensionModules(m.ExtensionVariants(), target.String())
	for _, ext := range extensions {
		fmt.Fprintf(cmd.OutOrStdout(), "extension %s variant=%s\n", ext.Name, ext.Variant)
	}
	logger.Info("extensions resolved", "target", target, "groups", len(m.Extensions), "chosen", len(extensions))

	if resolveFlags.lockfilePath != "" {
		return writeSnapshot(logger, policy, target.String(), extensions)
	}
	return nil
}

func writeSnapshot(logger *log.Logger, policy *pypackaging.PackagingPolicy, target string, extensions []pypackaging.ExtensionModule) error {
	snapshot := lockfile.FromResolution(policy, target, extensions)

	if previous, err := lockfile.ReadFile(resolveFlags.lockfilePath); err == nil {
		diff := lockfile.Compare(previous, snapshot)
		if diff.HasChanges() {
			logger.Info("resolution changed", "added", diff.Added, "removed", diff.Removed)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read existing lockfile: %w", err)
	}

	if err := snapshot.WriteFile(resolveFlags.lockfilePath); err != nil {
		return fmt.Errorf("write lockfile: %w", err)
	}
	logger.Info("lockfile written", "path", resolveFlags.lockfilePath)
	return nil
}

// describeResource renders a one-line description of an admitted resource.
func describeResource(resource pypackaging.Resource) string {
	switch r := resource.(type) {
	case *pypackaging.ModuleSource:
		return fmt.Sprintf("module-source %s", r.Name)
	case *pypackaging.ModuleBytecodeRequest:
		return fmt.Sprintf("module-bytecode-request %s opt=%d", r.Name, r.OptimizeLevel)
	case *pypackaging.ModuleBytecode:
		return fmt.Sprintf("module-bytecode %s", r.Name)
	case *pypackaging.PackageResource:
		return fmt.Sprintf("package-resource %s/%s", r.Package, r.Name)
	case *pypackaging.DistributionResource:
		return fmt.Sprintf("distribution-resource %s/%s", r.Package, r.Name)
	case *pypackaging.ExtensionModuleDynamicLibrary:
		return fmt.Sprintf("extension-dynamic %s", r.Name)
	case *pypackaging.ExtensionModuleStaticallyLinked:
		return fmt.Sprintf("extension-static %s", r.Name)
	case *pypackaging.PathExtension:
		return fmt.Sprintf("path-extension %s", r.Path)
	case *pypackaging.EggFile:
		return fmt.Sprintf("egg-file %s", r.Path)
	default:
		return fmt.Sprintf("%T", resource)
	}
}
