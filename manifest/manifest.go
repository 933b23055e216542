// Package manifest reads YAML descriptions of the resources and extension
// module variants available in a Python distribution.
//
// Discovery of those resources from a distribution archive happens in
// tooling outside this module; a manifest is the serialized hand-off point.
// Loading converts the entries into the core types consumed by
// pypackaging.PackagingPolicy.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Resource kind literals accepted in a manifest.
const (
	KindModuleSource                    = "module-source"
	KindModuleBytecodeRequest           = "module-bytecode-request"
	KindModuleBytecode                  = "module-bytecode"
	KindPackageResource                 = "package-resource"
	KindDistributionResource            = "distribution-resource"
	KindExtensionModuleDynamicLibrary   = "extension-module-dynamic-library"
	KindExtensionModuleStaticallyLinked = "extension-module-statically-linked"
	KindPathExtension                   = "path-extension"
	KindEggFile                         = "egg-file"
)

// Manifest is the top-level document: the resource stream plus the groups of
// interchangeable extension module variants.
type Manifest struct {
	Resources  []ResourceEntry  `yaml:"resources"`
	Extensions []ExtensionGroup `yaml:"extensions"`
}

// ResourceEntry describes one discovered resource.
type ResourceEntry struct {
	// Kind is one of the Kind* literals.
	Kind string `yaml:"kind"`

	// Name is the module, extension or resource name. Required for every
	// kind except path-extension and egg-file.
	Name string `yaml:"name,omitempty"`

	// Package is the owning package, for the package-resource and
	// distribution-resource kinds.
	Package string `yaml:"package,omitempty"`

	// Path locates file-backed resources (dynamic libraries, .pth files,
	// eggs).
	Path string `yaml:"path,omitempty"`

	// OptimizeLevel is the bytecode optimization level for the bytecode
	// kinds.
	OptimizeLevel int `yaml:"optimize_level,omitempty"`

	// IsPackage indicates the module is a package.
	IsPackage bool `yaml:"is_package,omitempty"`

	// IsTest indicates the resource belongs to a test package.
	IsTest bool `yaml:"is_test,omitempty"`
}

// ExtensionGroup describes the variants available for one logical extension
// module. Order is meaningful: the first variant is the default.
type ExtensionGroup struct {
	Name     string         `yaml:"name"`
	Variants []VariantEntry `yaml:"variants"`
}

// VariantEntry describes one extension module variant.
type VariantEntry struct {
	Variant        string `yaml:"variant"`
	InitFunction   string `yaml:"init_function,omitempty"`
	BuiltinDefault bool   `yaml:"builtin_default,omitempty"`
	Required       bool   `yaml:"required,omitempty"`

	LinkLibraries []LibraryEntry `yaml:"link_libraries,omitempty"`

	// Licenses carries SPDX identifiers. An absent key means licensing is
	// unknown; an explicitly empty list means license-free. The distinction
	// matters under the no-gpl filter.
	Licenses            []string `yaml:"licenses,omitempty"`
	LicensePublicDomain bool     `yaml:"license_public_domain,omitempty"`
}

// LibraryEntry describes a linked library.
type LibraryEntry struct {
	Name      string `yaml:"name"`
	System    bool   `yaml:"system,omitempty"`
	Framework bool   `yaml:"framework,omitempty"`
}

// Load reads, parses and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse parses and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks structural requirements: known resource kinds, names where
// required, and non-empty variant groups.
func (m *Manifest) Validate() error {
	for i, r := range m.Resources {
		if err := r.validate(); err != nil {
			return fmt.Errorf("resources[%d]: %w", i, err)
		}
	}

	for i, g := range m.Extensions {
		if g.Name == "" {
			return fmt.Errorf("extensions[%d]: missing name", i)
		}
		if len(g.Variants) == 0 {
			return fmt.Errorf("extensions[%d] (%s): at least one variant is required", i, g.Name)
		}
		for j, v := range g.Variants {
			if v.Variant == "" {
				return fmt.Errorf("extensions[%d] (%s): variants[%d]: missing variant name", i, g.Name, j)
			}
		}
	}

	return nil
}

func (r *ResourceEntry) validate() error {
	switch r.Kind {
	case KindModuleSource, KindModuleBytecodeRequest, KindModuleBytecode,
		KindExtensionModuleStaticallyLinked:
		if r.Name == "" {
			return fmt.Errorf("kind %s requires a name", r.Kind)
		}
	case KindPackageResource, KindDistributionResource:
		if r.Package == "" || r.Name == "" {
			return fmt.Errorf("kind %s requires a package and a name", r.Kind)
		}
	case KindExtensionModuleDynamicLibrary:
		if r.Name == "" || r.Path == "" {
			return fmt.Errorf("kind %s requires a name and a path", r.Kind)
		}
	case KindPathExtension, KindEggFile:
		if r.Path == "" {
			return fmt.Errorf("kind %s requires a path", r.Kind)
		}
	case "":
		return fmt.Errorf("missing resource kind")
	default:
		return fmt.Errorf("unknown resource kind %q", r.Kind)
	}
	return nil
}
