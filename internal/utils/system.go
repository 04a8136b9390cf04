package utils

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// DefaultKeyName builds the default display name for a shared key,
// in the form <username>_<hostname>. Falls back to "anonymous" for
// either half that cannot be determined.
func DefaultKeyName() string {
	username, err := GetUsername()
	if err != nil || username == "" {
		username = "anonymous"
	}
	hostname, err := GetHostname()
	if err != nil || hostname == "" {
		hostname = "anonymous"
	}
	return SanitizeKeyName(username + "_" + hostname)
}

// SanitizeKeyName strips characters that would be awkward in a filename.
// The display name doubles as the exported key's filename, so it must not
// contain path separators or whitespace.
func SanitizeKeyName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "-")

	re := regexp.MustCompile(`[^A-Za-z0-9.\-_]`)
	name = re.ReplaceAllString(name, "")

	name = strings.Trim(name, "-.")
	if name == "" {
		name = "key"
	}
	return name
}
