package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

func TestCommandRegistration(t *testing.T) {
	expected := []string{
		"share", "sync", "encrypt", "decrypt", "reencrypt",
		"clean", "list", "doctor", "export", "import", "sign", "trust",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestMaintenanceCommandsHidden(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		switch c.Name() {
		case "export", "import", "sign", "trust":
			if !c.Hidden {
				t.Errorf("Expected %q to be hidden from help output", c.Name())
			}
		case "share", "sync", "encrypt", "decrypt":
			if c.Hidden {
				t.Errorf("Expected %q to be visible in help output", c.Name())
			}
		}
	}
}

func TestHelpOutput(t *testing.T) {
	defer ResetGlobalState()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Help failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "keyfold") || !strings.Contains(out, "share") {
		t.Errorf("Unexpected help output: %s", out)
	}
	// Hidden maintenance commands stay out of the listing.
	if strings.Contains(out, "trust") {
		t.Errorf("Expected trust to be absent from help output")
	}
}

func TestList_MissingKeylist(t *testing.T) {
	defer ResetGlobalState()

	// A directory with no key directory anywhere above it.
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	}()

	rootCmd.SetArgs([]string{"list"})
	err = rootCmd.Execute()
	if !errors.Is(err, kferrors.ErrMissingKeylist) {
		t.Errorf("Expected ErrMissingKeylist, got %v", err)
	}
}

func TestResetGlobalState(t *testing.T) {
	verbose = true
	debug = true
	askPassphrase = true

	ResetGlobalState()

	if verbose || debug || askPassphrase {
		t.Errorf("Expected flags reset to defaults")
	}
}
