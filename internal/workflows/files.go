package workflows

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/keyfold/keyfold/internal/keydir"
)

// CiphertextSuffix is appended to a plaintext filename to form its
// ciphertext sibling.
const CiphertextSuffix = ".gpg"

// IsCiphertext reports whether a path names a ciphertext file.
func IsCiphertext(path string) bool {
	return strings.HasSuffix(filepath.Base(path), CiphertextSuffix)
}

// PlaintextPath strips the ciphertext suffix.
func PlaintextPath(cipherPath string) string {
	return strings.TrimSuffix(cipherPath, CiphertextSuffix)
}

// ResolveFiles expands user-provided paths, directories, and globs into a
// deduplicated, order-preserving file list. forDecryption selects ciphertext
// files; otherwise ciphertexts are filtered out. Files inside the key
// directory are never included.
func ResolveFiles(patterns []string, baseDir string, forDecryption bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, forDecryption)
		if err != nil {
			return nil, err
		}
		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no matching files found")
	}
	return files, nil
}

func resolvePattern(pattern string, baseDir string, forDecryption bool) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	// A directory argument means every matching file beneath it.
	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, forDecryption)
	}

	if strings.ContainsAny(pattern, "*?[") {
		return expandGlob(absPattern, forDecryption)
	}

	// Literal file path.
	if _, err := os.Stat(absPattern); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", pattern)
	}
	if forDecryption && !IsCiphertext(absPattern) {
		return nil, fmt.Errorf("not an encrypted file: %s", pattern)
	}
	if !forDecryption && IsCiphertext(absPattern) {
		return nil, fmt.Errorf("already encrypted: %s", pattern)
	}
	return []string{absPattern}, nil
}

func expandGlob(absPattern string, forDecryption bool) ([]string, error) {
	// doublestar for ** support.
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", absPattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if inKeyDir(m) {
			continue
		}
		if IsCiphertext(m) == forDecryption {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func findFilesInDir(dir string, forDecryption bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == keydir.Name {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if IsCiphertext(path) == forDecryption {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func inKeyDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == keydir.Name {
			return true
		}
	}
	return false
}
