package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/keyfold/keyfold/internal/configs"
	"github.com/keyfold/keyfold/internal/gpg"
	"github.com/keyfold/keyfold/internal/keydir"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"
)

// buildEnv assembles the per-invocation workflow environment: user config,
// resolved key directory, and the GnuPG provider.
func buildEnv() (*workflows.Env, *configs.UserConfig, error) {
	cfg := &configs.UserConfig{}
	if configPath, err := configs.DefaultPath(); err == nil {
		loaded, err := configs.LoadUserConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	dir, err := keydir.LocateWd()
	if err != nil {
		return nil, nil, err
	}
	Logger.Debugf("Key directory: %s (found=%t)", dir.Path, dir.Found)

	provider := gpg.NewCLI(cfg.GPGBinary)
	if askPassphrase {
		// Read from the controlling terminal so stdin stays free for
		// piped input.
		passphrase, err := utils.ReadPassphraseFromTTY("Passphrase: ")
		if err != nil {
			return nil, nil, err
		}
		provider.Passphrase = passphrase
	}

	env := &workflows.Env{
		Dir:      dir,
		Provider: provider,
		LocalID:  cfg.DefaultKey,
		Log:      Logger,
	}
	return env, cfg, nil
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a cleanup function to
// defer; the cleanup prints FinalMSG with a guaranteed trailing newline.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// No color support; continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Discard stray log output while the spinner owns the line.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}
		if !verbose && !debug {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}
	return s, cleanup
}
