package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt FILE...",
	Short: "Decrypt ciphertext files with your private key",
	Long: `Decrypts each .gpg file with the local private key, writing the
plaintext next to it with the suffix stripped. Arguments may be files,
directories, or glob patterns. Plaintexts are written owner-only.`,
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
		Logger.Debugf("Resolved %d files to decrypt", len(files))

		s, cleanup := startSpinner("Decrypting files...")
		defer cleanup()

		result, err := workflows.DecryptFiles(cmd.Context(), env, files)
		if err != nil {
			completed := 0
			if result != nil {
				completed = result.Completed
			}
			s.FinalMSG = fmt.Sprintf("%s Decryption halted after %d of %d files\n",
				ui.Failure(), completed, len(files))
			return err
		}

		s.FinalMSG = fmt.Sprintf("%s Decrypted %d files%s",
			ui.Success(), result.Completed, utils.FormatPaths(result.Outputs, cwd))
		return nil
	},
}
