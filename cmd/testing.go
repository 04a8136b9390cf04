package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logger "github.com/keyfold/keyfold/internal/logging"
)

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// ResetGlobalState resets all command global variables to their default
// values, preventing state leaking between test runs.
func ResetGlobalState() {
	verbose = false
	debug = false
	askPassphrase = false
	Logger = logger.Logger{}
	resetCobraFlagState(rootCmd)
}

func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
