package cmd

import (
	"github.com/spf13/cobra"

	logger "github.com/keyfold/keyfold/internal/logging"
)

var (
	verbose       bool
	debug         bool
	askPassphrase bool
	Logger        logger.Logger

	rootCmd = &cobra.Command{
		Use:   "keyfold",
		Short: "Keyfold - shared-secret encryption for a directory of collaborators",
		Long: `Keyfold keeps a directory of exported public keys and a keylist naming
who can decrypt, and encrypts files so every registered collaborator can
open them with their own private key.

The key directory (.gpg-keys) lives next to the files it protects,
typically committed to version control. Run 'keyfold share' once to
publish your key, 'keyfold sync' whenever the keylist changes, and
'keyfold encrypt'/'keyfold decrypt' day to day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keyfold with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&askPassphrase, "ask-passphrase", false,
		"prompt for the key passphrase instead of relying on the gpg agent")

	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(reencryptCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(trustCmd)
}

// Execute runs the root command, printing a one-line diagnostic on failure.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		Logger.Errorf("%v", err)
		return err
	}
	return nil
}
