package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/gpg"
)

// SyncResult contains the results of a sync operation.
type SyncResult struct {
	// Imported is the number of keys newly imported into the keyring.
	Imported int

	// Skipped is the number of keylist entries already present.
	Skipped int

	// ImportedNames lists the display names of newly imported keys.
	ImportedNames []string
}

// Sync brings the local keyring up to date with the keylist: every entry
// whose key ID is not yet in the keyring gets its .pub file imported, marked
// maximally trusted, and signed with the local identity. Signing is what
// keeps the provider from balking at untrusted recipients during encryption.
//
// Entries already present are skipped entirely, so running sync repeatedly
// imports each key at most once.
func Sync(ctx context.Context, env *Env) (*SyncResult, error) {
	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}

	for _, entry := range kl.Entries() {
		present, err := env.Provider.HasKey(ctx, entry.KeyID)
		if err != nil {
			return nil, fmt.Errorf("failed to check keyring for %s: %w", entry.KeyID, err)
		}
		if present {
			env.Log.Debugf("Key %s (%s) already in keyring, skipping", entry.KeyID, entry.Name)
			result.Skipped++
			continue
		}

		keyPath := env.Dir.KeyPath(entry.Name)
		armored, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read public key for %s at %s: %w", entry.Name, keyPath, err)
		}

		if err := env.Provider.ImportPublicKey(ctx, armored); err != nil {
			return nil, fmt.Errorf("failed to import key for %s: %w", entry.Name, err)
		}
		if err := env.Provider.SetTrust(ctx, entry.KeyID, gpg.TrustUltimate); err != nil {
			return nil, fmt.Errorf("failed to trust key for %s: %w", entry.Name, err)
		}
		if err := env.Provider.SignKey(ctx, entry.KeyID); err != nil {
			return nil, fmt.Errorf("failed to sign key for %s: %w", entry.Name, err)
		}

		env.Log.Infof("Imported, trusted, and signed %s (%s)", entry.KeyID, entry.Name)
		result.Imported++
		result.ImportedNames = append(result.ImportedNames, entry.Name)
	}

	audit.Log(env.Dir, audit.Entry{Operation: "sync", Imported: result.Imported})

	return result, nil
}
