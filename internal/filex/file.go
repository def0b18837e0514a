// Package filex contains filesystem helpers for locating client data files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir returns the per-user data directory for the application,
// creating it if necessary. The directory lives under the OS user config
// dir (e.g. ~/.config/<app> on Linux).
func EnsureDataDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	dir := filepath.Join(base, appName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
