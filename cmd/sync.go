package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import keylist keys into your local keyring",
	Long: `Brings the local keyring up to date with the keylist: every entry not
yet in the keyring has its exported key imported, trusted, and signed.
Entries already present are skipped, so sync is safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := buildEnv()
		if err != nil {
			return err
		}

		s, cleanup := startSpinner("Syncing keyring with keylist...")
		defer cleanup()

		result, err := workflows.Sync(cmd.Context(), env)
		if err != nil {
			s.FinalMSG = fmt.Sprintf("%s Sync failed\n", ui.Failure())
			return err
		}

		if result.Imported == 0 {
			s.FinalMSG = fmt.Sprintf("%s Keyring already up to date (%d keys)\n", ui.Success(), result.Skipped)
			return nil
		}
		s.FinalMSG = fmt.Sprintf("%s Imported %d new keys (%d already present)\n%s",
			ui.Success(), result.Imported, result.Skipped, ui.BulletList(result.ImportedNames))
		return nil
	},
}
