package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/keyfold/keyfold/internal/gpg"
)

func TestExportAll_RewritesKeyFilesOnly(t *testing.T) {
	ctx := context.Background()
	env, fake := newTestEnv(t)
	addCollaborator(t, env, fake, aliceFingerprint, "alice", true)
	addCollaborator(t, env, fake, bobFingerprint, "bob", false)

	keylistBefore, err := os.ReadFile(env.Dir.KeylistPath())
	if err != nil {
		t.Fatalf("Failed to read keylist: %v", err)
	}

	// Corrupt a key file, then export everything fresh from the keyring.
	if err := os.WriteFile(env.Dir.KeyPath("alice"), []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to corrupt key file: %v", err)
	}

	result, err := ExportAll(ctx, env)
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if result.Processed != 2 {
		t.Errorf("Expected 2 keys exported, got %d", result.Processed)
	}

	data, err := os.ReadFile(env.Dir.KeyPath("alice"))
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}
	if string(data) == "stale" {
		t.Errorf("Expected key file to be rewritten")
	}

	// The keylist text itself is never rewritten by export.
	keylistAfter, _ := os.ReadFile(env.Dir.KeylistPath())
	if string(keylistAfter) != string(keylistBefore) {
		t.Errorf("Expected keylist to be untouched by export")
	}
}

func TestImportAll_Unconditional(t *testing.T) {
	ctx := context.Background()
	env, fake := newTestEnv(t)
	aliceID := addCollaborator(t, env, fake, aliceFingerprint, "alice", true)

	// Unlike sync, import does not skip keys already in the keyring: two
	// runs mean two imports.
	for i := 0; i < 2; i++ {
		if _, err := ImportAll(ctx, env); err != nil {
			t.Fatalf("ImportAll failed: %v", err)
		}
	}
	if fake.ImportCount[aliceID] != 2 {
		t.Errorf("Expected 2 unconditional imports, got %d", fake.ImportCount[aliceID])
	}
}

func TestTrustAllAndSignAll(t *testing.T) {
	ctx := context.Background()
	env, fake := newTestEnv(t)
	aliceID := addCollaborator(t, env, fake, aliceFingerprint, "alice", true)
	bobID := addCollaborator(t, env, fake, bobFingerprint, "bob", false)

	if _, err := TrustAll(ctx, env); err != nil {
		t.Fatalf("TrustAll failed: %v", err)
	}
	if _, err := SignAll(ctx, env); err != nil {
		t.Fatalf("SignAll failed: %v", err)
	}

	for _, keyID := range []string{aliceID, bobID} {
		if fake.TrustLevels[keyID] != gpg.TrustUltimate {
			t.Errorf("Expected %s trusted", keyID)
		}
		if fake.SignCount[keyID] != 1 {
			t.Errorf("Expected %s signed once, got %d", keyID, fake.SignCount[keyID])
		}
	}
}

func TestList_OnDiskOrder(t *testing.T) {
	ctx := context.Background()
	env, fake := newTestEnv(t)
	addCollaborator(t, env, fake, bobFingerprint, "bob", false)
	addCollaborator(t, env, fake, aliceFingerprint, "alice", false)

	entries, err := List(ctx, env)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "bob" || entries[1].Name != "alice" {
		t.Errorf("Expected on-disk order bob, alice; got %v", entries)
	}
}
