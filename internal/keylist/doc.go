// Package keylist reads and appends the keylist file, the single source of
// truth for who can decrypt the project's files.
//
// # File format
//
// The keylist is plain text, one entry per line:
//
//	E396871B3A03F6C8 alice_laptop
//	90A1BE4FD80561A2 bob_desktop
//
// The first whitespace-separated token is the key ID (the short hexadecimal
// fingerprint suffix the crypto provider uses), the second is the display
// name. The display name is also the filename of the exported public key
// (<name>.pub) in the key directory. The format is line-oriented and
// append-only precisely so that it diffs and merges cleanly under version
// control.
//
// # Parsing policy
//
// Load tolerates hand editing: blank or short lines are skipped, extra
// tokens are ignored, and duplicate key IDs collapse last-wins. No key ID
// format validation is performed. A Keylist is constructed once per command
// invocation and passed to whatever needs it; there is no process-wide
// shared copy.
package keylist
