package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds per-user defaults. Everything is optional; an absent
// config file behaves like an empty one.
type UserConfig struct {
	// DefaultKey is the key reference share uses when no KEYID argument is
	// given, and the local identity passed to the provider for decryption.
	DefaultKey string `toml:"default_key"`

	// DisplayName overrides the <username>_<hostname> default for share.
	DisplayName string `toml:"display_name"`

	// GPGBinary overrides the gpg executable used by the provider.
	GPGBinary string `toml:"gpg_binary"`
}

// DefaultPath returns the standard location of the user config file.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "keyfold", "config.toml"), nil
}

// LoadUserConfig loads the user configuration from path. A missing file
// yields an empty config, not an error.
func LoadUserConfig(path string) (*UserConfig, error) {
	config := &UserConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to path.
func SaveUserConfig(path string, config *UserConfig) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}
