package gpg

import "context"

// TrustLevel is an ownertrust value as understood by the provider.
type TrustLevel int

const (
	// TrustUltimate marks a key as maximally trusted, so encryption to it
	// never prompts for confirmation.
	TrustUltimate TrustLevel = 6
)

// Provider is the narrow surface keyfold needs from an asymmetric
// encryption tool. The concrete implementation may shell out to a binary or
// link a library; the workflows never assume an invocation mechanism, so
// tests substitute Fake.
type Provider interface {
	// EncryptFor encrypts plaintext so that any of the recipient key IDs
	// can decrypt it.
	EncryptFor(ctx context.Context, recipients []string, plaintext []byte) ([]byte, error)

	// DecryptWith decrypts ciphertext using the local identity's private
	// key. An empty localID means the provider's default identity.
	DecryptWith(ctx context.Context, localID string, ciphertext []byte) ([]byte, error)

	// ImportPublicKey imports an armored public key into the local keyring.
	ImportPublicKey(ctx context.Context, armored []byte) error

	// ExportPublicKey exports the armored public key for a key ID.
	// Returns ErrInvalidKeyID (wrapped) if no key matches.
	ExportPublicKey(ctx context.Context, keyID string) ([]byte, error)

	// SetTrust assigns an ownertrust level to a key in the local keyring.
	SetTrust(ctx context.Context, keyID string, level TrustLevel) error

	// SignKey certifies a key in the local keyring with the local identity,
	// so encrypting to it does not trip untrusted-recipient prompts.
	SignKey(ctx context.Context, keyID string) error

	// ResolveKey resolves a key reference (full fingerprint, email, name)
	// to the bare key ID used in the keylist.
	ResolveKey(ctx context.Context, ref string) (string, error)

	// HasKey reports whether a key ID is present in the local keyring.
	HasKey(ctx context.Context, keyID string) (bool, error)
}
