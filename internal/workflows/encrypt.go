package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	kferrors "github.com/keyfold/keyfold/internal/errors"
	"github.com/keyfold/keyfold/internal/keylist"
)

// BatchResult describes a sequential multi-file operation. When an error is
// returned alongside it, Completed counts the files finished before the
// failure halted the batch.
type BatchResult struct {
	Requested int
	Completed int
	Outputs   []string
}

// EncryptFile encrypts one plaintext file for every recipient in the
// keylist, writing the ciphertext next to it with the .gpg suffix. The
// plaintext is left in place, and an existing ciphertext is overwritten
// unconditionally.
func EncryptFile(ctx context.Context, env *Env, kl *keylist.Keylist, plainPath string) (string, error) {
	if _, err := os.Stat(plainPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s: %w", plainPath, kferrors.ErrFileNotFound)
	}

	recipients := kl.Recipients()
	if len(recipients) == 0 {
		return "", fmt.Errorf("cannot encrypt %s: %w", plainPath, kferrors.ErrNoRecipients)
	}

	plaintext, err := os.ReadFile(plainPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", plainPath, err)
	}

	ciphertext, err := env.Provider.EncryptFor(ctx, recipients, plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt %s: %w", plainPath, err)
	}

	cipherPath := plainPath + CiphertextSuffix
	// #nosec G306 -- ciphertext is meant to be committed and shared.
	if err := os.WriteFile(cipherPath, ciphertext, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", cipherPath, err)
	}

	env.Log.Infof("Encrypted %s for %d recipients", plainPath, len(recipients))
	return cipherPath, nil
}

// EncryptFiles encrypts the given plaintext files sequentially against the
// current keylist. The batch halts on the first failure; the result reports
// how many files completed before it.
func EncryptFiles(ctx context.Context, env *Env, plainPaths []string) (*BatchResult, error) {
	if len(plainPaths) == 0 {
		return nil, kferrors.ErrNoFilesSpecified
	}

	kl, err := env.loadKeylist()
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Requested: len(plainPaths)}
	for _, plainPath := range plainPaths {
		cipherPath, err := EncryptFile(ctx, env, kl, plainPath)
		if err != nil {
			return result, err
		}
		result.Completed++
		result.Outputs = append(result.Outputs, cipherPath)
	}

	audit.Log(env.Dir, audit.Entry{Operation: "encrypt", Files: plainPaths, FilesCount: result.Completed})

	return result, nil
}
