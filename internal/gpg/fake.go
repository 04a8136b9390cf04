package gpg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	kferrors "github.com/keyfold/keyfold/internal/errors"
)

const (
	fakeArmorHeader = "-----BEGIN FAKE PUBLIC KEY-----"
	fakeArmorFooter = "-----END FAKE PUBLIC KEY-----"
)

// Fake is an in-memory Provider for tests. Each Fake models one
// collaborator's local keyring; tests move armored key bytes between Fakes
// the same way collaborators move .pub files through the key directory.
//
// Ciphertext is a JSON envelope recording the recipient set, so tests can
// assert who a file was encrypted for without any real cryptography.
type Fake struct {
	keys map[string]*fakeKey

	// ImportCount records how many times each key ID was imported, for
	// asserting sync idempotence.
	ImportCount map[string]int

	// TrustLevels records the ownertrust assigned to each key ID.
	TrustLevels map[string]TrustLevel

	// SignCount records how many times each key ID was signed.
	SignCount map[string]int
}

type fakeKey struct {
	fingerprint string
	secret      bool
}

type fakeEnvelope struct {
	Recipients []string `json:"recipients"`
	Payload    []byte   `json:"payload"`
}

// NewFake returns an empty fake keyring.
func NewFake() *Fake {
	return &Fake{
		keys:        make(map[string]*fakeKey),
		ImportCount: make(map[string]int),
		TrustLevels: make(map[string]TrustLevel),
		SignCount:   make(map[string]int),
	}
}

// AddKey registers a key by fingerprint and returns its key ID (the last 16
// fingerprint characters). secret marks the key as a local identity whose
// private half this keyring holds.
func (f *Fake) AddKey(fingerprint string, secret bool) string {
	keyID := fingerprint
	if len(fingerprint) > 16 {
		keyID = fingerprint[len(fingerprint)-16:]
	}
	f.keys[keyID] = &fakeKey{fingerprint: fingerprint, secret: secret}
	return keyID
}

// HasSecret reports whether the keyring holds the private half of a key.
func (f *Fake) HasSecret(keyID string) bool {
	k, ok := f.keys[keyID]
	return ok && k.secret
}

func (f *Fake) EncryptFor(ctx context.Context, recipients []string, plaintext []byte) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients: %w", kferrors.ErrProviderFailure)
	}
	for _, r := range recipients {
		if _, ok := f.keys[r]; !ok {
			return nil, fmt.Errorf("no public key for recipient %s: %w", r, kferrors.ErrProviderFailure)
		}
	}
	return json.Marshal(fakeEnvelope{Recipients: recipients, Payload: plaintext})
}

func (f *Fake) DecryptWith(ctx context.Context, localID string, ciphertext []byte) ([]byte, error) {
	var env fakeEnvelope
	if err := json.Unmarshal(ciphertext, &env); err != nil {
		return nil, fmt.Errorf("malformed ciphertext: %w", kferrors.ErrProviderFailure)
	}

	for _, r := range env.Recipients {
		k, ok := f.keys[r]
		if !ok || !k.secret {
			continue
		}
		if localID == "" || localID == r {
			return env.Payload, nil
		}
	}
	return nil, fmt.Errorf("no usable secret key: %w", kferrors.ErrKeyNotInKeyring)
}

func (f *Fake) ImportPublicKey(ctx context.Context, armored []byte) error {
	fingerprint, ok := parseFakeArmor(string(armored))
	if !ok {
		return fmt.Errorf("malformed key material: %w", kferrors.ErrProviderFailure)
	}

	keyID := fingerprint
	if len(fingerprint) > 16 {
		keyID = fingerprint[len(fingerprint)-16:]
	}

	// Importing a key already present keeps its secret half.
	if existing, ok := f.keys[keyID]; ok {
		existing.fingerprint = fingerprint
	} else {
		f.keys[keyID] = &fakeKey{fingerprint: fingerprint}
	}
	f.ImportCount[keyID]++
	return nil
}

func (f *Fake) ExportPublicKey(ctx context.Context, keyID string) ([]byte, error) {
	k, ok := f.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", keyID, kferrors.ErrInvalidKeyID)
	}
	armored := fakeArmorHeader + "\n" + k.fingerprint + "\n" + fakeArmorFooter + "\n"
	return []byte(armored), nil
}

func (f *Fake) SetTrust(ctx context.Context, keyID string, level TrustLevel) error {
	if _, ok := f.keys[keyID]; !ok {
		return fmt.Errorf("%s: %w", keyID, kferrors.ErrInvalidKeyID)
	}
	f.TrustLevels[keyID] = level
	return nil
}

func (f *Fake) SignKey(ctx context.Context, keyID string) error {
	if _, ok := f.keys[keyID]; !ok {
		return fmt.Errorf("%s: %w", keyID, kferrors.ErrInvalidKeyID)
	}
	f.SignCount[keyID]++
	return nil
}

func (f *Fake) ResolveKey(ctx context.Context, ref string) (string, error) {
	if _, ok := f.keys[ref]; ok {
		return ref, nil
	}
	for keyID, k := range f.keys {
		if k.fingerprint == ref || strings.HasSuffix(k.fingerprint, ref) {
			return keyID, nil
		}
	}
	return "", fmt.Errorf("%s: %w", ref, kferrors.ErrInvalidKeyID)
}

func (f *Fake) HasKey(ctx context.Context, keyID string) (bool, error) {
	_, ok := f.keys[keyID]
	return ok, nil
}

func parseFakeArmor(armored string) (string, bool) {
	lines := strings.Split(strings.TrimSpace(armored), "\n")
	if len(lines) != 3 || lines[0] != fakeArmorHeader || lines[2] != fakeArmorFooter {
		return "", false
	}
	fingerprint := strings.TrimSpace(lines[1])
	if fingerprint == "" {
		return "", false
	}
	return fingerprint, true
}
