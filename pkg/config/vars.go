package config

import (
	"path/filepath"
	"strconv"
)

var (
	// AppName is used in generating file system paths.
	AppName = "wastd"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/wastd by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory for local data such as SQLite databases.
// Returns ~/.local/share/wastd by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/wastd/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/wastd/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath resolves the SQLite database path. Relative paths are
// placed in DataDir, absolute paths and ":memory:" are kept as is.
func SQLitePath(homeDir, path string) string {
	if path == ":memory:" || filepath.IsAbs(path) || homeDir == "" {
		return path
	}
	return filepath.Join(DataDir(homeDir), path)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
