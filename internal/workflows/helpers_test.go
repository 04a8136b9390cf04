package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/keyfold/keyfold/internal/gpg"
	"github.com/keyfold/keyfold/internal/keydir"
	"github.com/keyfold/keyfold/internal/keylist"
	logger "github.com/keyfold/keyfold/internal/logging"
)

// newTestEnv builds an Env over a fresh temp project with an existing key
// directory and a fake provider acting as the local keyring.
func newTestEnv(t *testing.T) (*Env, *gpg.Fake) {
	t.Helper()

	dir := keydir.Locate(t.TempDir())
	if err := dir.Ensure(); err != nil {
		t.Fatalf("Failed to create key directory: %v", err)
	}

	fake := gpg.NewFake()
	env := &Env{
		Dir:      dir,
		Provider: fake,
		Log:      logger.Logger{},
	}
	return env, fake
}

// addCollaborator registers a key in the fake keyring, exports it into the
// key directory, and appends the keylist entry, matching the state that
// share+sync would produce for a collaborator.
func addCollaborator(t *testing.T, env *Env, fake *gpg.Fake, fingerprint, name string, secret bool) string {
	t.Helper()

	keyID := fake.AddKey(fingerprint, secret)

	armored, err := fake.ExportPublicKey(context.Background(), keyID)
	if err != nil {
		t.Fatalf("Failed to export key: %v", err)
	}
	if err := os.WriteFile(env.Dir.KeyPath(name), armored, 0644); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	if err := keylist.Append(env.Dir.KeylistPath(), keyID, name); err != nil {
		t.Fatalf("Failed to append keylist entry: %v", err)
	}
	return keyID
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	t.Fatalf("Failed to stat %s: %v", path, err)
	return false
}

const (
	aliceFingerprint = "4F9C31A8D2E05B7C11D43A90E396871B3A03F6C8"
	bobFingerprint   = "77B2C04E1F8A935D60C4128890A1BE4FD80561A2"
	carolFingerprint = "1D2E3F405162738495A6B7C8D9E0F1A2B3C4D5E6"
)
