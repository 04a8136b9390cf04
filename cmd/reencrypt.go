package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
)

var reencryptCmd = &cobra.Command{
	Use:     "reencrypt FILE...",
	Aliases: []string{"re-encrypt"},
	Short:   "Re-encrypt ciphertexts for the current keylist",
	Long: `Refreshes each .gpg file against the keylist as it stands now:
decrypt, encrypt for the current recipients, remove the intermediate
plaintext. Run this after adding a collaborator so existing ciphertexts
cover their key.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := buildEnv()
		if err != nil {
			return err
		}
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		files, err := workflows.ResolveFiles(args, cwd, true)
		if err != nil {
			return err
		}
		Logger.Debugf("Resolved %d files to re-encrypt", len(files))

		s, cleanup := startSpinner("Re-encrypting files...")
		defer cleanup()

		result, err := workflows.ReencryptFiles(cmd.Context(), env, files)
		if err != nil {
			completed := 0
			if result != nil {
				completed = result.Completed
			}
			s.FinalMSG = fmt.Sprintf("%s Re-encryption halted after %d of %d files\n",
				ui.Failure(), completed, len(files))
			return err
		}

		s.FinalMSG = fmt.Sprintf("%s Re-encrypted %d files for the current keylist\n",
			ui.Success(), result.Completed)
		return nil
	},
}
