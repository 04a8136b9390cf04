package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [DIR]",
	Short: "Remove plaintexts that have a ciphertext sibling",
	Long: `Scans DIR (default: the directory holding the key directory, or the
current directory) for .gpg files and deletes each one's plaintext
sibling. Purely name-driven: nothing is decrypted, and a ciphertext
without a plaintext next to it is already clean.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := buildEnv()
		if err != nil {
			return err
		}

		var rootDir string
		switch {
		case len(args) == 1:
			rootDir = args[0]
		case env.Dir.Found:
			rootDir = filepath.Dir(env.Dir.Path)
		default:
			rootDir, err = os.Getwd()
			if err != nil {
				return err
			}
		}
		Logger.Debugf("Cleaning under %s", rootDir)

		s, cleanup := startSpinner("Removing plaintext files...")
		defer cleanup()

		result, err := workflows.Clean(cmd.Context(), env, rootDir)
		if err != nil {
			s.FinalMSG = fmt.Sprintf("%s Clean failed\n", ui.Failure())
			return err
		}

		if len(result.Removed) == 0 {
			s.FinalMSG = fmt.Sprintf("%s Nothing to clean (%d ciphertexts checked)\n",
				ui.Success(), result.Ciphertexts)
			return nil
		}
		s.FinalMSG = fmt.Sprintf("%s Removed %d plaintext files\n%s",
			ui.Success(), len(result.Removed), ui.BulletList(result.Removed))
		return nil
	},
}
