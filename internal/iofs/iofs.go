// Package iofs prepares the files WAStD keeps under the home directory:
// the config file, the data directory with the SQLite database, and logs.
package iofs

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dbca-wa/wastd/pkg/config"
)

// ConfigYAML is the default config.yaml.
//
//go:embed config.yaml
var ConfigYAML string

// Dirs returns directories used by WAStD in the order they are created.
func Dirs(homeDir string) []string {
	return []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
}

// EnsureDirs creates missing WAStD directories.
func EnsureDirs(homeDir string) error {
	for _, v := range Dirs(homeDir) {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureSQLiteDir creates the directory of the SQLite database file when
// the configuration uses SQLite with a file on disk.
func EnsureSQLiteDir(cfg *config.Config) error {
	d := cfg.Database
	if d.Driver != config.DriverSQLite || d.Path == ":memory:" {
		return nil
	}
	path := config.SQLitePath(cfg.HomeDir, d.Path)
	return touchDir(filepath.Dir(path))
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return CreateDirError(dir, errors.New("a file with this name exists"))
	}

	if err = os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file exists.
// The file may hold a database password, so only its owner can read it.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return ConfigReadError(path, err)
	}

	if err = os.WriteFile(path, []byte(ConfigYAML), 0600); err != nil {
		return ConfigWriteError(path, err)
	}
	return nil
}
