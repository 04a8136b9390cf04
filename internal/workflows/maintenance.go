package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	"github.com/keyfold/keyfold/internal/gpg"
)

// MaintenanceResult counts how many keylist entries a bulk maintenance
// operation touched.
type MaintenanceResult struct {
	Processed int
}

// ExportAll rewrites the exported .pub file for every keylist entry from
// the local keyring. Only the key material is refreshed; the keylist text
// itself is never rewritten, so hand-made ordering and comments survive.
func ExportAll(ctx context.Context, env *Env) (*MaintenanceResult, error) {
	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &MaintenanceResult{}
	for _, entry := range kl.Entries() {
		armored, err := env.Provider.ExportPublicKey(ctx, entry.KeyID)
		if err != nil {
			return result, fmt.Errorf("failed to export key for %s: %w", entry.Name, err)
		}
		keyPath := env.Dir.KeyPath(entry.Name)
		// #nosec G306 -- exported public keys are shared team state.
		if err := os.WriteFile(keyPath, armored, 0644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", keyPath, err)
		}
		env.Log.Debugf("Rewrote %s", keyPath)
		result.Processed++
	}

	audit.Log(env.Dir, audit.Entry{Operation: "export", FilesCount: result.Processed})
	return result, nil
}

// ImportAll imports every keylist entry's .pub file into the local keyring.
// Unlike Sync it does not skip keys already present: every file is imported
// unconditionally, which also picks up refreshed key material (new subkeys,
// extended expiry) for keys the keyring already knows.
func ImportAll(ctx context.Context, env *Env) (*MaintenanceResult, error) {
	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &MaintenanceResult{}
	for _, entry := range kl.Entries() {
		keyPath := env.Dir.KeyPath(entry.Name)
		armored, err := os.ReadFile(keyPath)
		if err != nil {
			return result, fmt.Errorf("failed to read public key for %s at %s: %w", entry.Name, keyPath, err)
		}
		if err := env.Provider.ImportPublicKey(ctx, armored); err != nil {
			return result, fmt.Errorf("failed to import key for %s: %w", entry.Name, err)
		}
		env.Log.Debugf("Imported %s", keyPath)
		result.Processed++
	}

	audit.Log(env.Dir, audit.Entry{Operation: "import", Imported: result.Processed})
	return result, nil
}

// TrustAll marks every keylist entry's key as maximally trusted in the
// local keyring.
func TrustAll(ctx context.Context, env *Env) (*MaintenanceResult, error) {
	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &MaintenanceResult{}
	for _, entry := range kl.Entries() {
		if err := env.Provider.SetTrust(ctx, entry.KeyID, gpg.TrustUltimate); err != nil {
			return result, fmt.Errorf("failed to trust key for %s: %w", entry.Name, err)
		}
		env.Log.Debugf("Trusted %s (%s)", entry.KeyID, entry.Name)
		result.Processed++
	}
	return result, nil
}

// SignAll signs every keylist entry's key with the local identity.
func SignAll(ctx context.Context, env *Env) (*MaintenanceResult, error) {
	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &MaintenanceResult{}
	for _, entry := range kl.Entries() {
		if err := env.Provider.SignKey(ctx, entry.KeyID); err != nil {
			return result, fmt.Errorf("failed to sign key for %s: %w", entry.Name, err)
		}
		env.Log.Debugf("Signed %s (%s)", entry.KeyID, entry.Name)
		result.Processed++
	}
	return result, nil
}
