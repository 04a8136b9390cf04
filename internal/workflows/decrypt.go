package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/internal/audit"
	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// DecryptFile decrypts one ciphertext file with the local identity, writing
// the plaintext next to it with the suffix stripped. The plaintext is
// written owner-only (0600) since it has just become a readable secret; an
// existing plaintext is overwritten unconditionally.
func DecryptFile(ctx context.Context, env *Env, cipherPath string) (string, error) {
	if !IsCiphertext(cipherPath) {
		return "", fmt.Errorf("%s: %w", cipherPath, kferrors.ErrInvalidCiphertext)
	}
	if _, err := os.Stat(cipherPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s: %w", cipherPath, kferrors.ErrFileNotFound)
	}

	ciphertext, err := os.ReadFile(cipherPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", cipherPath, err)
	}

	plaintext, err := env.Provider.DecryptWith(ctx, env.LocalID, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", cipherPath, err)
	}

	plainPath := PlaintextPath(cipherPath)
	if err := os.WriteFile(plainPath, plaintext, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", plainPath, err)
	}

	env.Log.Infof("Decrypted %s", cipherPath)
	return plainPath, nil
}

// DecryptFiles decrypts the given ciphertext files sequentially, halting on
// the first failure.
func DecryptFiles(ctx context.Context, env *Env, cipherPaths []string) (*BatchResult, error) {
	if len(cipherPaths) == 0 {
		return nil, kferrors.ErrNoFilesSpecified
	}

	result := &BatchResult{Requested: len(cipherPaths)}
	for _, cipherPath := range cipherPaths {
		plainPath, err := DecryptFile(ctx, env, cipherPath)
		if err != nil {
			return result, err
		}
		result.Completed++
		result.Outputs = append(result.Outputs, plainPath)
	}

	audit.Log(env.Dir, audit.Entry{Operation: "decrypt", Files: cipherPaths, FilesCount: result.Completed})

	return result, nil
}
