package errors

import "errors"

// State errors indicate the key directory or keylist is not in a usable state.
var (
	// ErrMissingKeylist indicates the keylist file does not exist yet.
	ErrMissingKeylist = errors.New("keylist file not found")

	// ErrKeyDirNotWritable indicates the key directory could not be created or written.
	ErrKeyDirNotWritable = errors.New("key directory is not writable")

	// ErrNoRecipients indicates the keylist is empty, so there is nobody to encrypt for.
	ErrNoRecipients = errors.New("keylist contains no recipients")
)

// Not-found errors indicate a file or key could not be located.
var (
	// ErrFileNotFound indicates a file to operate on does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoFilesSpecified indicates a batch operation was invoked with no files.
	ErrNoFilesSpecified = errors.New("no files specified")

	// ErrInvalidKeyID indicates the crypto provider could not resolve the key reference.
	ErrInvalidKeyID = errors.New("no key matches the given key ID")

	// ErrKeyNotInKeyring indicates a keylist entry has no matching key in the local keyring.
	ErrKeyNotInKeyring = errors.New("key not present in local keyring")
)

// Conflict errors indicate an operation would clobber existing shared state.
var (
	// ErrKeyAlreadyShared indicates a public key file with the same name already
	// exists in the key directory. Replacing a shared key requires manually
	// removing the file and its keylist line first.
	ErrKeyAlreadyShared = errors.New("public key has already been shared")
)

// Provider errors indicate the underlying cryptography call failed.
var (
	// ErrProviderFailure indicates the crypto provider returned an error
	// (bad passphrase, corrupt ciphertext, unusable key).
	ErrProviderFailure = errors.New("crypto provider call failed")

	// ErrInvalidCiphertext indicates a file does not look like a ciphertext
	// produced by this tool.
	ErrInvalidCiphertext = errors.New("not an encrypted file")
)
