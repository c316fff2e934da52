package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "wastd"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "wastd"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "wastd", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "wastd", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		msg, home, path, res string
	}{
		{"memory", "/home/u", ":memory:", ":memory:"},
		{"absolute", "/home/u", "/tmp/w.sqlite", "/tmp/w.sqlite"},
		{"relative", "/home/u", "w.sqlite",
			filepath.Join("/home/u", ".local", "share", "wastd", "w.sqlite")},
		{"no home", "", "w.sqlite", "w.sqlite"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, config.SQLitePath(v.home, v.path), v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "wastd.sqlite", cfg.Database.Path)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "postgres", cfg.Database.Password)
	assert.Equal(t, "wastd", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 1_000, cfg.Database.BatchSize)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.False(t, cfg.Server.AllowTransitions)
	assert.True(t, cfg.Workflow.DeactivateSiblings)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionStrings(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		field func(*config.Config) string
		res   string
	}{
		{
			name:  "sets host",
			opt:   config.OptDatabaseHost("db.example.com"),
			field: func(c *config.Config) string { return c.Database.Host },
			res:   "db.example.com",
		},
		{
			name:  "trims host",
			opt:   config.OptDatabaseHost("  db.example.com  "),
			field: func(c *config.Config) string { return c.Database.Host },
			res:   "db.example.com",
		},
		{
			name:  "ignores empty host",
			opt:   config.OptDatabaseHost("   "),
			field: func(c *config.Config) string { return c.Database.Host },
			res:   "localhost",
		},
		{
			name:  "sets driver",
			opt:   config.OptDatabaseDriver("SQLite"),
			field: func(c *config.Config) string { return c.Database.Driver },
			res:   config.DriverSQLite,
		},
		{
			name:  "ignores unknown driver",
			opt:   config.OptDatabaseDriver("mysql"),
			field: func(c *config.Config) string { return c.Database.Driver },
			res:   config.DriverPostgres,
		},
		{
			name:  "sets sqlite path",
			opt:   config.OptDatabasePath(":memory:"),
			field: func(c *config.Config) string { return c.Database.Path },
			res:   ":memory:",
		},
		{
			name:  "normalizes ssl mode",
			opt:   config.OptDatabaseSSLMode("REQUIRE"),
			field: func(c *config.Config) string { return c.Database.SSLMode },
			res:   "require",
		},
		{
			name:  "ignores invalid ssl mode",
			opt:   config.OptDatabaseSSLMode("invalid"),
			field: func(c *config.Config) string { return c.Database.SSLMode },
			res:   "disable",
		},
		{
			name:  "sets log level",
			opt:   config.OptLogLevel("debug"),
			field: func(c *config.Config) string { return c.Log.Level },
			res:   "debug",
		},
		{
			name:  "ignores invalid log format",
			opt:   config.OptLogFormat("xml"),
			field: func(c *config.Config) string { return c.Log.Format },
			res:   "json",
		},
		{
			name:  "sets log destination",
			opt:   config.OptLogDestination("stderr"),
			field: func(c *config.Config) string { return c.Log.Destination },
			res:   "stderr",
		},
		{
			name:  "sets server host",
			opt:   config.OptServerHost("0.0.0.0"),
			field: func(c *config.Config) string { return c.Server.Host },
			res:   "0.0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.res, tt.field(cfg))
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		field func(*config.Config) int
		res   int
	}{
		{
			name:  "sets port",
			opt:   config.OptDatabasePort(6543),
			field: func(c *config.Config) int { return c.Database.Port },
			res:   6543,
		},
		{
			name:  "ignores zero port",
			opt:   config.OptDatabasePort(0),
			field: func(c *config.Config) int { return c.Database.Port },
			res:   5432,
		},
		{
			name:  "ignores negative batch size",
			opt:   config.OptDatabaseBatchSize(-1),
			field: func(c *config.Config) int { return c.Database.BatchSize },
			res:   1_000,
		},
		{
			name:  "sets server port",
			opt:   config.OptServerPort(9000),
			field: func(c *config.Config) int { return c.Server.Port },
			res:   9000,
		},
		{
			name:  "ignores out of range server port",
			opt:   config.OptServerPort(70000),
			field: func(c *config.Config) int { return c.Server.Port },
			res:   config.New().Server.Port,
		},
		{
			name:  "sets jobs number",
			opt:   config.OptJobsNumber(3),
			field: func(c *config.Config) int { return c.JobsNumber },
			res:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.res, tt.field(cfg))
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
			config.OptWorkflowDeactivateSiblings(false),
			config.OptServerAllowTransitions(true),
		})

		assert.Equal(t, "second.host.com", cfg.Database.Host)
		assert.False(t, cfg.Workflow.DeactivateSiblings)
		assert.True(t, cfg.Server.AllowTransitions)
		assert.Equal(t, "json", cfg.Log.Format)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("round trips persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseDriver("sqlite"),
			config.OptDatabasePath("/tmp/wastd.sqlite"),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseBatchSize(200),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptServerHost("0.0.0.0"),
			config.OptServerPort(9999),
			config.OptServerAllowTransitions(true),
			config.OptWorkflowDeactivateSiblings(false),
			config.OptJobsNumber(8),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())
		assert.Equal(t, original, newCfg)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptHomeDir("/custom/home")})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())
		assert.Equal(t, "", newCfg.HomeDir)
	})
}
