package keylist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// Entry is one keylist line: a key ID and the display name it was shared
// under. The display name is also the filename of the exported public key.
type Entry struct {
	KeyID string
	Name  string
}

// Keylist is the recipient mapping loaded from the keylist file. On disk it
// is an ordered list of lines; in memory duplicate key IDs collapse with the
// last occurrence winning, keeping the position of the first.
type Keylist struct {
	entries []Entry
	index   map[string]int // keyID -> position in entries
}

// Load reads the keylist file. Returns ErrMissingKeylist (wrapped) if the
// file does not exist.
//
// Parsing is deliberately lenient to stay compatible with hand-edited
// files: blank lines and lines with fewer than two whitespace-separated
// tokens are skipped, and any tokens past the second are ignored.
func Load(path string) (*Keylist, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, kferrors.ErrMissingKeylist)
		}
		return nil, fmt.Errorf("failed to open keylist at %s: %w", path, err)
	}
	defer f.Close()

	kl := &Keylist{index: make(map[string]int)}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		kl.put(Entry{KeyID: fields[0], Name: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keylist at %s: %w", path, err)
	}

	return kl, nil
}

func (kl *Keylist) put(e Entry) {
	if i, ok := kl.index[e.KeyID]; ok {
		// Duplicate key ID: last line wins, first position kept.
		kl.entries[i] = e
		return
	}
	kl.index[e.KeyID] = len(kl.entries)
	kl.entries = append(kl.entries, e)
}

// Entries returns the keylist entries in on-disk order.
func (kl *Keylist) Entries() []Entry {
	return kl.entries
}

// Recipients returns the set of key IDs, in on-disk order. This set, not the
// local keyring, determines who a file is encrypted for.
func (kl *Keylist) Recipients() []string {
	ids := make([]string, 0, len(kl.entries))
	for _, e := range kl.entries {
		ids = append(ids, e.KeyID)
	}
	return ids
}

// Name returns the display name for a key ID.
func (kl *Keylist) Name(keyID string) (string, bool) {
	i, ok := kl.index[keyID]
	if !ok {
		return "", false
	}
	return kl.entries[i].Name, true
}

// Len returns the number of distinct key IDs.
func (kl *Keylist) Len() int {
	return len(kl.entries)
}

// Append writes one new entry line to the keylist file, creating the file if
// needed. It does not check for duplicates: re-sharing the same key ID
// produces a duplicate line that coalesces on the next Load.
func Append(path string, keyID, name string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open keylist at %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", keyID, name); err != nil {
		return fmt.Errorf("failed to append to keylist at %s: %w", path, err)
	}
	return nil
}
