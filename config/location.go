// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package config

import (
	"os"
	"path/filepath"
)

// DefaultFileName is the default file name for the config file
const DefaultFileName = "config.yaml"

// EnvVar overrides the config file location
const EnvVar = "SCLOC_CONFIG"

// DefaultDirectory returns the default directory for scloc configuration ($HOME/.scloc)
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".scloc"), nil
}

// DefaultPath returns the default config file location ($HOME/.scloc/config.yaml)
func DefaultPath() (string, error) {
	dir, err := DefaultDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, DefaultFileName), nil
}
