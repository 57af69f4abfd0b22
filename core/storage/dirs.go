// Package storage resolves the aw data root directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnvVar overrides the default data root location.
const RootEnvVar = "AW_HOME"

// DBFileName is the work log database file inside the data root.
const DBFileName = "worklog.db"

// ConfigFileName is the optional configuration file inside the data root.
const ConfigFileName = "config.yaml"

// ResolveRoot returns the aw data root, honoring the AW_HOME override.
// Defaults to <user-home>/.aw.
func ResolveRoot() (string, error) {
	if dir := os.Getenv(RootEnvVar); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".aw"), nil
}

// EnsureRoot resolves the data root and creates it if absent.
func EnsureRoot() (string, error) {
	root, err := ResolveRoot()
	if err != nil {
		return "", err
	}
	if err := EnsureDir(root, 0700); err != nil {
		return "", fmt.Errorf("create data root: %w", err)
	}
	return root, nil
}

// DBPath returns the full path of the work log database, creating the
// data root if needed.
func DBPath() (string, error) {
	root, err := EnsureRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DBFileName), nil
}

// ConfigPath returns the full path of the configuration file. The data
// root is not created; a missing config is not an error.
func ConfigPath() (string, error) {
	root, err := ResolveRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFileName), nil
}

// EnsureDir creates a directory with the specified permissions if it doesn't exist.
// Uses 0700 by default.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0700
	}
	return os.MkdirAll(path, perm)
}
