package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keylist"
)

// ReencryptFile refreshes one ciphertext against the current keylist:
// decrypt, encrypt for the recipient set as it stands now, then remove the
// intermediate plaintext. This is how ciphertext catches up after a key was
// added to (or removed from) the keylist.
//
// The sequence is not atomic. Interrupted between decrypt and encrypt it
// leaves the plaintext on disk (mode 0600); interrupted after encrypt but
// before the final remove it leaves both files behind. Either way `clean`
// or a manual remove restores the expected state, so the simple sequence is
// kept rather than staging through temporary files.
func ReencryptFile(ctx context.Context, env *Env, kl *keylist.Keylist, cipherPath string) error {
	plainPath, err := DecryptFile(ctx, env, cipherPath)
	if err != nil {
		return err
	}

	if _, err := EncryptFile(ctx, env, kl, plainPath); err != nil {
		return err
	}

	if err := os.Remove(plainPath); err != nil {
		return fmt.Errorf("failed to remove intermediate plaintext %s: %w", plainPath, err)
	}

	env.Log.Infof("Re-encrypted %s for current recipients", cipherPath)
	return nil
}

// ReencryptFiles re-encrypts the given ciphertext files sequentially
// against the current keylist, halting on the first failure.
func ReencryptFiles(ctx context.Context, env *Env, cipherPaths []string) (*BatchResult, error) {
	if len(cipherPaths) == 0 {
		return nil, kferrors.ErrNoFilesSpecified
	}

	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Requested: len(cipherPaths)}
	for _, cipherPath := range cipherPaths {
		if err := ReencryptFile(ctx, env, kl, cipherPath); err != nil {
			return result, err
		}
		result.Completed++
		result.Outputs = append(result.Outputs, cipherPath)
	}

	audit.Log(env.Dir, audit.Entry{Operation: "reencrypt", Files: cipherPaths, FilesCount: result.Completed})

	return result, nil
}
