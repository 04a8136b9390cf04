package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
)

var shareCmd = &cobra.Command{
	Use:   "share [KEYID] [KEYNAME]",
	Short: "Export your public key into the key directory",
	Long: `Exports the public half of a local key into the key directory and
registers it in the keylist so other collaborators encrypt for it.

KEYID may be omitted when default_key is set in the user config. KEYNAME
defaults to the configured display name, or <username>_<hostname>.

Sharing the same name twice is refused: replacing a published key would
silently stop covering the old one. Remove the key file and its keylist
line by hand to re-share.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cfg, err := buildEnv()
		if err != nil {
			return err
		}

		keyRef := cfg.DefaultKey
		if len(args) > 0 {
			keyRef = args[0]
		}
		if keyRef == "" {
			return fmt.Errorf("no key given and no default_key configured: %w", kferrors.ErrInvalidKeyID)
		}

		name := cfg.DisplayName
		if len(args) > 1 {
			name = args[1]
		}

		s, cleanup := startSpinner("Sharing public key...")
		defer cleanup()

		result, err := workflows.Share(cmd.Context(), env, workflows.ShareOptions{KeyRef: keyRef, Name: name})
		if err != nil {
			s.FinalMSG = fmt.Sprintf("%s Failed to share key\n", ui.Failure())
			return err
		}

		s.FinalMSG = fmt.Sprintf("%s Shared key %s as %s\n%s %s\n",
			ui.Success(), result.KeyID, result.Name, ui.Arrow(), result.KeyPath)
		return nil
	},
}
