package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// idempotent
	for range 2 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "wastd"),
		filepath.Join(tmpDir, ".local", "share", "wastd"),
		filepath.Join(tmpDir, ".local", "share", "wastd", "logs"),
	}
	assert.Equal(t, dirs, Dirs(tmpDir))
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")
	require.NoError(t, touchDir(newDir))

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	err = touchDir(filepath.Join(file, "sub"))
	assert.Error(t, err)
	err = touchDir(file)
	assert.True(t, errcode.Has(err, errcode.CreateDirError))
}

func TestEnsureSQLiteDir(t *testing.T) {
	tmpDir := t.TempDir()
	tests := []struct {
		msg    string
		driver string
		path   string
		dir    string
	}{
		{"relative", config.DriverSQLite, "db/wastd.sqlite",
			filepath.Join(tmpDir, ".local", "share", "wastd", "db")},
		{"absolute", config.DriverSQLite,
			filepath.Join(tmpDir, "abs", "wastd.sqlite"),
			filepath.Join(tmpDir, "abs")},
		{"memory", config.DriverSQLite, ":memory:", ""},
		{"postgres", config.DriverPostgres, "pg/wastd.sqlite", ""},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptHomeDir(tmpDir),
				config.OptDatabaseDriver(v.driver),
				config.OptDatabasePath(v.path),
			})
			require.NoError(t, EnsureSQLiteDir(cfg))
			if v.dir == "" {
				return
			}
			info, err := os.Stat(v.dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
	_, err := os.Stat(filepath.Join(tmpDir, ".local", "share", "wastd", "pg"))
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	path := filepath.Join(tmpDir, ".config", "wastd", "config.yaml")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	custom := "database:\n  driver: sqlite\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content), "existing file is kept")
}

func TestConfigYAMLDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))

	want := config.New()
	want.JobsNumber = 0
	assert.Equal(t, *want, cfg)
}
