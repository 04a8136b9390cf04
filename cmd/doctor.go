package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the key directory for inconsistencies",
	Long: `Checks every keylist entry against its exported key file: missing
files, unparseable key material, and key IDs that do not match the
file's fingerprint. Also reports key files no keylist line references.
Nothing is modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := buildEnv()
		if err != nil {
			return err
		}

		result, err := workflows.Doctor(cmd.Context(), env)
		if err != nil {
			return err
		}

		for _, p := range result.Problems {
			fmt.Printf("%s %s\n", ui.Failure(), p)
		}
		for _, o := range result.Orphans {
			fmt.Printf("%s %s is not referenced by any keylist entry\n", ui.Arrow(), o)
		}

		if !result.Healthy() {
			return fmt.Errorf("found %d problems across %d keylist entries", len(result.Problems), result.Entries)
		}
		fmt.Printf("%s Checked %d keylist entries, no problems found\n", ui.Success(), result.Entries)
		return nil
	},
}
