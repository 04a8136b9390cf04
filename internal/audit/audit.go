// Package audit appends a best-effort JSONL trail of operations to the key
// directory, so a team can see who shared, synced, or re-encrypted what.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/keyfold/keyfold/internal/keydir"
	"github.com/keyfold/keyfold/internal/utils"
)

// LogFile is the audit log filename inside the key directory.
const LogFile = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`   // Random UUID.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Username of the operator.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Files      []string `json:"files,omitempty"`       // For encrypt/decrypt/reencrypt.
	FilesCount int      `json:"files_count,omitempty"` // For batch operations and clean.
	KeyID      string   `json:"key_id,omitempty"`      // For share.
	KeyName    string   `json:"key_name,omitempty"`    // For share.
	Imported   int      `json:"imported,omitempty"`    // For sync/import.
}

// Log appends an entry to the audit log in the key directory. Logging is
// best-effort: operations must not fail because the audit write did, so
// failures are silently dropped. Nothing is written when the key directory
// does not exist yet.
func Log(dir *keydir.Dir, entry Entry) {
	if dir == nil || !dir.Found {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User, _ = utils.GetUsername()
	}

	logPath := filepath.Join(dir.Path, LogFile)

	// #nosec G306 -- the audit log is shared team state, like the keylist.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log in the key directory.
// Returns nil if the log does not exist.
func ReadEntries(dir *keydir.Dir) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(dir.Path, LogFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
