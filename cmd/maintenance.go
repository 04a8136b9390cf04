package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
)

// The bulk maintenance commands are deliberately kept out of the main help
// listing. They exist for repair sessions, not the day-to-day workflow.

var exportCmd = &cobra.Command{
	Use:    "export",
	Short:  "Rewrite every exported key file from the local keyring",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd, "Exporting keys...", "Exported", workflows.ExportAll)
	},
}

var importCmd = &cobra.Command{
	Use:    "import",
	Short:  "Import every keylist key, even those already present",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd, "Importing keys...", "Imported", workflows.ImportAll)
	},
}

var signCmd = &cobra.Command{
	Use:    "sign",
	Short:  "Sign every keylist key with the local identity",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd, "Signing keys...", "Signed", workflows.SignAll)
	},
}

var trustCmd = &cobra.Command{
	Use:    "trust",
	Short:  "Mark every keylist key as trusted",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance(cmd, "Trusting keys...", "Trusted", workflows.TrustAll)
	},
}

func runMaintenance(cmd *cobra.Command, message, verb string,
	op func(context.Context, *workflows.Env) (*workflows.MaintenanceResult, error)) error {
	env, _, err := buildEnv()
	if err != nil {
		return err
	}

	s, cleanup := startSpinner(message)
	defer cleanup()

	result, err := op(cmd.Context(), env)
	if err != nil {
		processed := 0
		if result != nil {
			processed = result.Processed
		}
		s.FinalMSG = fmt.Sprintf("%s Halted after %d keys\n", ui.Failure(), processed)
		return err
	}

	s.FinalMSG = fmt.Sprintf("%s %s %d keys\n", ui.Success(), verb, result.Processed)
	return nil
}
