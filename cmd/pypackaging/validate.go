package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyembed/go-pypackaging/starconf"
)

var validateFlags struct {
	policyFile string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a packaging policy file for errors",
	Long: `Validate parses a Starlark policy file and reports every diagnostic,
without evaluating anything against a manifest.

Example:
  pypackaging validate --policy policy.bzl`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.policyFile, "policy", "p", "", "Starlark policy file")
	validateCmd.MarkFlagRequired("policy")
}

func runValidate(cmd *cobra.Command, args []string) error {
	result, err := starconf.ParseFile(validateFlags.policyFile)
	if err != nil {
		return err
	}

	if result.HasErrors() {
		for _, diag := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), diag.Error())
		}
		return fmt.Errorf("%s: %d error(s)", validateFlags.policyFile, len(result.Errors))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (filter=%s, resources=%s)\n",
		validateFlags.policyFile,
		result.Policy.ExtensionModuleFilter(),
		result.Policy.ResourcesPolicy())
	return nil
}
