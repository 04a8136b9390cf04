// Package gpg abstracts the asymmetric encryption tool behind the Provider
// interface and ships two implementations: CLI, which drives a GnuPG binary
// as a subprocess, and Fake, an in-memory provider for tests.
//
// Keyfold performs no cryptography of its own. Key generation, the keyring,
// trust, and the actual ciphering all belong to the provider; the rest of
// the codebase only ever sees key IDs, armored key bytes, plaintext, and
// ciphertext.
//
// The CLI implementation talks to gpg in --batch mode with --with-colons
// output where parsing is needed. Errors from the subprocess are reduced to
// a single diagnostic line and wrapped in ErrProviderFailure so commands
// never dump raw gpg stderr at the user.
package gpg
