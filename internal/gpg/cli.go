package gpg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

// CLI is a Provider that drives a GnuPG binary as a subprocess. All
// invocations run in --batch mode; data moves over stdin/stdout so the
// provider never touches the files being encrypted.
type CLI struct {
	// Binary is the gpg executable to invoke. Defaults to "gpg".
	Binary string

	// Passphrase, when set, is handed to gpg over a dedicated file
	// descriptor in loopback pinentry mode. Used when no agent is
	// available (CI, piped input).
	Passphrase []byte
}

// NewCLI returns a CLI provider for the given binary. An empty binary
// selects "gpg" from PATH.
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = "gpg"
	}
	return &CLI{Binary: binary}
}

// run invokes gpg with the given arguments, feeding stdin and returning
// stdout. On failure the first stderr line is wrapped in ErrProviderFailure.
func (c *CLI) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	baseArgs := []string{"--batch", "--no-tty", "--quiet"}

	var extraFiles []*os.File
	if len(c.Passphrase) > 0 {
		r, w, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("failed to create passphrase pipe: %w", err)
		}
		defer r.Close()
		go func() {
			_, _ = w.Write(c.Passphrase)
			w.Close()
		}()

		// ExtraFiles start at fd 3 in the child.
		extraFiles = append(extraFiles, r)
		baseArgs = append(baseArgs, "--pinentry-mode", "loopback", "--passphrase-fd", "3")
	}

	cmd := exec.CommandContext(ctx, c.Binary, append(baseArgs, args...)...)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.ExtraFiles = extraFiles

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", c.Binary, firstLine(stderr.String()), kferrors.ErrProviderFailure)
	}

	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "operation failed"
	}
	return strings.TrimPrefix(s, "gpg: ")
}

func (c *CLI) EncryptFor(ctx context.Context, recipients []string, plaintext []byte) ([]byte, error) {
	args := []string{"--encrypt", "--yes"}
	for _, r := range recipients {
		args = append(args, "--recipient", r)
	}
	return c.run(ctx, plaintext, args...)
}

func (c *CLI) DecryptWith(ctx context.Context, localID string, ciphertext []byte) ([]byte, error) {
	args := []string{"--decrypt"}
	if localID != "" {
		args = append(args, "--local-user", localID)
	}
	return c.run(ctx, ciphertext, args...)
}

func (c *CLI) ImportPublicKey(ctx context.Context, armored []byte) error {
	_, err := c.run(ctx, armored, "--import")
	return err
}

func (c *CLI) ExportPublicKey(ctx context.Context, keyID string) ([]byte, error) {
	out, err := c.run(ctx, nil, "--armor", "--export", keyID)
	if err != nil {
		return nil, err
	}
	// gpg exits zero even when nothing matched; an empty export means the
	// key does not exist.
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, fmt.Errorf("%s: %w", keyID, kferrors.ErrInvalidKeyID)
	}
	return out, nil
}

func (c *CLI) SetTrust(ctx context.Context, keyID string, level TrustLevel) error {
	fpr, err := c.fingerprint(ctx, keyID)
	if err != nil {
		return err
	}
	ownertrust := fmt.Sprintf("%s:%d:\n", fpr, level)
	_, err = c.run(ctx, []byte(ownertrust), "--import-ownertrust")
	return err
}

func (c *CLI) SignKey(ctx context.Context, keyID string) error {
	fpr, err := c.fingerprint(ctx, keyID)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, nil, "--yes", "--quick-sign-key", fpr)
	return err
}

func (c *CLI) ResolveKey(ctx context.Context, ref string) (string, error) {
	out, err := c.run(ctx, nil, "--with-colons", "--list-keys", ref)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ref, kferrors.ErrInvalidKeyID)
	}
	keyID, ok := parseKeyID(out)
	if !ok {
		return "", fmt.Errorf("%s: %w", ref, kferrors.ErrInvalidKeyID)
	}
	return keyID, nil
}

func (c *CLI) HasKey(ctx context.Context, keyID string) (bool, error) {
	// gpg exits non-zero both when the key is missing and on real listing
	// failures; absence is by far the common case, so a failed listing
	// reports not-present and the subsequent import surfaces any real
	// problem.
	out, err := c.run(ctx, nil, "--with-colons", "--list-keys", keyID)
	if err != nil {
		return false, nil
	}
	_, ok := parseKeyID(out)
	return ok, nil
}

// fingerprint resolves a key ID to its full fingerprint, which ownertrust
// and quick-sign-key require.
func (c *CLI) fingerprint(ctx context.Context, keyID string) (string, error) {
	out, err := c.run(ctx, nil, "--with-colons", "--fingerprint", keyID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", keyID, kferrors.ErrInvalidKeyID)
	}
	fpr, ok := parseFingerprint(out)
	if !ok {
		return "", fmt.Errorf("%s: %w", keyID, kferrors.ErrInvalidKeyID)
	}
	return fpr, nil
}

// parseKeyID extracts the key ID (field 5) from the first pub: record of
// --with-colons output.
func parseKeyID(out []byte) (string, bool) {
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "pub:") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) > 4 && fields[4] != "" {
			return fields[4], true
		}
	}
	return "", false
}

// parseFingerprint extracts the fingerprint (field 10) from the first fpr:
// record of --with-colons output.
func parseFingerprint(out []byte) (string, bool) {
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "fpr:") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) > 9 && fields[9] != "" {
			return fields[9], true
		}
	}
	return "", false
}
