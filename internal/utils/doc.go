// Package utils provides small helpers with no keyfold-specific state:
// system identity lookups, terminal passphrase prompts, and display
// formatting for file paths.
package utils
