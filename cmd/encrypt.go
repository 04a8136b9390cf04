package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt FILE...",
	Short: "Encrypt files for every registered collaborator",
	Long: `Encrypts each file for every key in the keylist, writing the
ciphertext next to it with a .gpg suffix. Arguments may be files,
directories (walked recursively), or glob patterns like '**/*.env'.
Plaintexts are left in place; run 'keyfold clean' to remove them.`,
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

		files, err := workflows.ResolveFiles(args, cwd, false)
		if err != nil {
			return err
		}
		Logger.Debugf("Resolved %d files to encrypt", len(files))

		s, cleanup := startSpinner("Encrypting files...")
		defer cleanup()

		result, err := workflows.EncryptFiles(cmd.Context(), env, files)
		if err != nil {
			completed := 0
			if result != nil {
				completed = result.Completed
			}
			s.FinalMSG = fmt.Sprintf("%s Encryption halted after %d of %d files\n",
				ui.Failure(), completed, len(files))
			return err
		}

		s.FinalMSG = fmt.Sprintf("%s Encrypted %d files%s",
			ui.Success(), result.Completed, utils.FormatPaths(result.Outputs, cwd))
		return nil
	},
}
