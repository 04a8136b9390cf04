package workflows

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/ProtonMail/gopenpgp/v2/crypto"

	"github.com/keyfold/keyfold/internal/keylist"
)

// generateArmoredKey produces a real armored public key and its key ID (the
// last 16 fingerprint characters, uppercased).
func generateArmoredKey(t *testing.T, name string) (armored string, keyID string) {
	t.Helper()

	key, err := crypto.GenerateKey(name, name+"@example.com", "x25519", 0)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	armored, err = key.GetArmoredPublicKey()
	if err != nil {
		t.Fatalf("Failed to armor key: %v", err)
	}
	fingerprint := strings.ToUpper(key.GetFingerprint())
	return armored, fingerprint[len(fingerprint)-16:]
}

func TestDoctor_Healthy(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	armored, keyID := generateArmoredKey(t, "alice")
	if err := os.WriteFile(env.Dir.KeyPath("alice"), []byte(armored), 0644); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	if err := keylist.Append(env.Dir.KeylistPath(), keyID, "alice"); err != nil {
		t.Fatalf("Failed to append keylist: %v", err)
	}

	result, err := Doctor(ctx, env)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if !result.Healthy() {
		t.Errorf("Expected healthy result, got problems: %v", result.Problems)
	}
	if result.Entries != 1 {
		t.Errorf("Expected 1 entry checked, got %d", result.Entries)
	}
}

func TestDoctor_MissingKeyFile(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	if err := keylist.Append(env.Dir.KeylistPath(), "DEADBEEFDEADBEEF", "ghost"); err != nil {
		t.Fatalf("Failed to append keylist: %v", err)
	}

	result, err := Doctor(ctx, env)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if result.Healthy() {
		t.Fatalf("Expected a problem for the missing key file")
	}
	if !strings.Contains(result.Problems[0], "ghost.pub is missing") {
		t.Errorf("Unexpected problem text: %s", result.Problems[0])
	}
}

func TestDoctor_FingerprintMismatch(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	armored, _ := generateArmoredKey(t, "alice")
	if err := os.WriteFile(env.Dir.KeyPath("alice"), []byte(armored), 0644); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	// Registered under a key ID that belongs to nobody.
	if err := keylist.Append(env.Dir.KeylistPath(), "AAAABBBBCCCCDDDD", "alice"); err != nil {
		t.Fatalf("Failed to append keylist: %v", err)
	}

	result, err := Doctor(ctx, env)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if result.Healthy() {
		t.Fatalf("Expected a fingerprint mismatch problem")
	}
	if !strings.Contains(result.Problems[0], "does not match fingerprint") {
		t.Errorf("Unexpected problem text: %s", result.Problems[0])
	}
}

func TestDoctor_InvalidArmor(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	if err := os.WriteFile(env.Dir.KeyPath("alice"), []byte("garbage"), 0644); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	if err := keylist.Append(env.Dir.KeylistPath(), "AAAABBBBCCCCDDDD", "alice"); err != nil {
		t.Fatalf("Failed to append keylist: %v", err)
	}

	result, err := Doctor(ctx, env)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if result.Healthy() || !strings.Contains(result.Problems[0], "not a valid armored key") {
		t.Errorf("Expected invalid armor problem, got: %v", result.Problems)
	}
}

func TestDoctor_OrphanKeyFile(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	armored, keyID := generateArmoredKey(t, "alice")
	if err := os.WriteFile(env.Dir.KeyPath("alice"), []byte(armored), 0644); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	if err := keylist.Append(env.Dir.KeylistPath(), keyID, "alice"); err != nil {
		t.Fatalf("Failed to append keylist: %v", err)
	}
	// A key file with no keylist line.
	if err := os.WriteFile(env.Dir.KeyPath("stray"), []byte(armored), 0644); err != nil {
		t.Fatalf("Failed to write stray key: %v", err)
	}

	result, err := Doctor(ctx, env)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	// Orphans are warnings; the directory is still healthy.
	if !result.Healthy() {
		t.Errorf("Expected healthy result, got problems: %v", result.Problems)
	}
	if len(result.Orphans) != 1 || result.Orphans[0] != "stray.pub" {
		t.Errorf("Expected stray.pub orphan, got %v", result.Orphans)
	}
}

func TestDoctor_MissingKeylist(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t)

	result, err := Doctor(ctx, env)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if result.Healthy() {
		t.Errorf("Expected missing keylist to be reported as a problem")
	}
}
