// Package workflows implements the command-level operations of keyfold:
// sharing keys, syncing the keyring, encrypting, decrypting, re-encrypting,
// and cleaning plaintexts.
//
// The cmd/ package stays a thin layer that parses flags, calls one workflow
// function, and formats the result. Workflows own everything else: locating
// state, loading the keylist, driving the crypto provider, and recording
// audit entries. Each function takes a context, an Env, and an options
// struct, and returns a result struct describing what happened.
//
// # Consistency model
//
// The keylist is the single source of truth for the recipient set. Every
// workflow re-loads it from disk at the start of the operation; nothing is
// cached between invocations, so two commands run back to back always see
// each other's writes. There is no cross-process locking: concurrent
// invocations on a shared filesystem can race on the keylist with a
// lost-update outcome, which is accepted because the key directory is
// expected to live in version control where collaborators coordinate
// through merges.
package workflows
