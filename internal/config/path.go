// Package config resolves file paths for the bot's on-disk state.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabaseFile is the database location relative to the user's
// home directory, used when database.path is not configured.
const DefaultDatabaseFile = ".local/share/catat/catat.db"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DatabasePath resolves the SQLite database location. An explicit value
// wins after ~ and $VAR expansion; otherwise the default under the
// user's home directory is used.
func DatabasePath(configured string) (string, error) {
	if configured != "" {
		return ExpandPath(configured), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDatabaseFile), nil
}
