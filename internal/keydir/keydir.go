package keydir

import (
	"fmt"
	"os"
	"path/filepath"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// Name is the reserved directory name holding exported public keys and the
// keylist. It is searched for upward from the working directory, so one key
// directory at a repository root serves every subdirectory beneath it.
const Name = ".gpg-keys"

// KeylistFile is the name of the keylist file inside the key directory.
const KeylistFile = "keylist"

// Dir is a resolved key directory. It may not exist on disk yet; Ensure
// creates it lazily before the first write.
type Dir struct {
	// Path is the absolute path of the key directory.
	Path string

	// Found reports whether the directory existed when located, as opposed
	// to being the default location under the starting directory.
	Found bool
}

// Locate searches start and its ancestors for a directory named Name and
// returns the first match. If none exists anywhere up to the filesystem
// root, the result points at Name under the original starting directory and
// Found is false. Locate never fails: an unreadable ancestor is treated the
// same as one with no key directory.
func Locate(start string) *Dir {
	currentDir := start

	for {
		candidate := filepath.Join(currentDir, Name)
		fileInfo, err := os.Stat(candidate)
		if err == nil && fileInfo.IsDir() {
			return &Dir{Path: candidate, Found: true}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached the filesystem root without a match.
			return &Dir{Path: filepath.Join(start, Name), Found: false}
		}
		currentDir = parentDir
	}
}

// LocateWd is Locate starting from the process working directory.
func LocateWd() (*Dir, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return Locate(wd), nil
}

// Ensure creates the key directory (with intermediate directories) if it
// does not exist yet.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.Path, kferrors.ErrKeyDirNotWritable)
	}
	d.Found = true
	return nil
}

// KeylistPath returns the path of the keylist file.
func (d *Dir) KeylistPath() string {
	return filepath.Join(d.Path, KeylistFile)
}

// KeyPath returns the path of the exported public key for a display name.
func (d *Dir) KeyPath(name string) string {
	return filepath.Join(d.Path, name+".pub")
}

// Root returns the directory containing the key directory, which is treated
// as the project root for relative display and for clean's default scope.
func (d *Dir) Root() string {
	return filepath.Dir(d.Path)
}
