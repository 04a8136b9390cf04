package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/keyfold/keyfold/internal/audit"
)

// CleanResult contains the outcome of a clean operation.
type CleanResult struct {
	// Ciphertexts is the number of ciphertext files found under the root.
	Ciphertexts int

	// Removed lists the plaintext files that were deleted.
	Removed []string
}

// Clean finds every ciphertext file under rootDir and deletes its plaintext
// sibling if one exists. It is purely name-convention driven: no decryption
// happens, and a ciphertext without a plaintext sibling is simply already
// clean. Files inside the key directory are ignored.
func Clean(ctx context.Context, env *Env, rootDir string) (*CleanResult, error) {
	matches, err := doublestar.Glob(os.DirFS(rootDir), "**/*"+CiphertextSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for encrypted files: %w", rootDir, err)
	}

	result := &CleanResult{}
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		cipherPath := filepath.Join(rootDir, m)
		if inKeyDir(cipherPath) {
			continue
		}
		result.Ciphertexts++

		plainPath := PlaintextPath(cipherPath)
		if _, err := os.Stat(plainPath); os.IsNotExist(err) {
			continue
		}
		if err := os.Remove(plainPath); err != nil {
			return result, fmt.Errorf("failed to remove %s: %w", plainPath, err)
		}
		env.Log.Infof("Removed plaintext %s", plainPath)
		result.Removed = append(result.Removed, plainPath)
	}

	audit.Log(env.Dir, audit.Entry{Operation: "clean", FilesCount: len(result.Removed)})

	return result, nil
}
