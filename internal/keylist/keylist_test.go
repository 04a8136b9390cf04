package keylist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

func writeKeylist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keylist")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write keylist: %v", err)
	}
	return path
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keylist")

	_, err := Load(path)
	if !errors.Is(err, kferrors.ErrMissingKeylist) {
		t.Fatalf("Expected ErrMissingKeylist, got: %v", err)
	}
}

func TestLoad_Basic(t *testing.T) {
	path := writeKeylist(t, "AAAA1111 alice\nBBBB2222 bob\n")

	kl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if kl.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", kl.Len())
	}
	if got := kl.Recipients(); got[0] != "AAAA1111" || got[1] != "BBBB2222" {
		t.Errorf("Unexpected recipient order: %v", got)
	}
	if name, ok := kl.Name("BBBB2222"); !ok || name != "bob" {
		t.Errorf("Expected bob, got %q (ok=%v)", name, ok)
	}
}

func TestLoad_ParsingPolicy(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIDs []string
	}{
		{
			name:    "blank lines skipped",
			content: "\nAAAA1111 alice\n\n\nBBBB2222 bob\n",
			wantIDs: []string{"AAAA1111", "BBBB2222"},
		},
		{
			name:    "short lines skipped",
			content: "AAAA1111\nBBBB2222 bob\n",
			wantIDs: []string{"BBBB2222"},
		},
		{
			name:    "extra tokens ignored",
			content: "AAAA1111 alice extra tokens here\n",
			wantIDs: []string{"AAAA1111"},
		},
		{
			name:    "tabs and multiple spaces",
			content: "AAAA1111\t\talice\nBBBB2222   bob\n",
			wantIDs: []string{"AAAA1111", "BBBB2222"},
		},
		{
			name:    "no trailing newline",
			content: "AAAA1111 alice",
			wantIDs: []string{"AAAA1111"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeKeylist(t, tt.content)
			kl, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			got := kl.Recipients()
			if strings.Join(got, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("Expected %v, got %v", tt.wantIDs, got)
			}
		})
	}
}

func TestLoad_DuplicateKeyIDLastWins(t *testing.T) {
	path := writeKeylist(t, "AAAA1111 alice\nBBBB2222 bob\nAAAA1111 alice_new\n")

	kl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if kl.Len() != 2 {
		t.Fatalf("Expected duplicates to collapse, got %d entries", kl.Len())
	}
	if name, _ := kl.Name("AAAA1111"); name != "alice_new" {
		t.Errorf("Expected last entry to win, got %q", name)
	}
	// First position is kept.
	if kl.Entries()[0].KeyID != "AAAA1111" {
		t.Errorf("Expected AAAA1111 to keep its first position")
	}
}

func TestAppend_CreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keylist")

	if err := Append(path, "AAAA1111", "alice"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := Append(path, "BBBB2222", "bob"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read keylist: %v", err)
	}
	want := "AAAA1111 alice\nBBBB2222 bob\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestAppend_DuplicateCoalescesOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keylist")

	// Appending the same entry twice is idempotent by construction: the
	// duplicate line overwrites itself on load.
	if err := Append(path, "AAAA1111", "alice"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := Append(path, "AAAA1111", "alice"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	kl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if kl.Len() != 1 {
		t.Errorf("Expected 1 entry after coalescing, got %d", kl.Len())
	}
}
