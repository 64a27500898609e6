package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".nts"

// DataDir returns the base data directory for nts.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// EnsureDataDir creates the data directory if needed.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the path to the client configuration file.
func ConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// TokenPath returns the path to the session token file.
func TokenPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// LogPath returns the path of the UI log file. The terminal owns stdout
// while the UI runs, so logs go to a file.
func LogPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nts.log"), nil
}

// DefaultDatabasePath is where `nts serve` keeps its SQLite database unless
// NTS_DB points elsewhere.
func DefaultDatabasePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notes.db"), nil
}
