package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DocumentFolder holds the notes document under the user configuration directory.
	DocumentFolder = "Instelle"
	// AssetFolder holds imported tab images under the user configuration directory.
	AssetFolder = "InStelle"
	// ConfigFilename is looked up inside DocumentFolder when no config file is given.
	ConfigFilename = "config.yaml"
)

// DefaultDataDir returns <UserConfigDir>/Instelle.
func DefaultDataDir() (string, error) {
	return userDir(DocumentFolder)
}

// DefaultAssetDir returns <UserConfigDir>/InStelle.
func DefaultAssetDir() (string, error) {
	return userDir(AssetFolder)
}

// DefaultConfigFile returns <UserConfigDir>/Instelle/config.yaml.
func DefaultConfigFile() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFilename), nil
}

func userDir(name string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user configuration directory: %w", err)
	}
	return filepath.Join(base, name), nil
}
