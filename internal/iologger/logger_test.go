package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	path := filepath.Join(dir, LogFile)

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")
	slog.Debug("hidden")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"first"`)
	assert.Contains(t, string(content), `"msg":"second"`)
	assert.NotContains(t, string(content), "hidden")

	require.NoError(t, Init(dir, cfg, false))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content, "log is truncated without append")
}

func TestInitError(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.True(t, errcode.Has(err, errcode.CreateLogFileError))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for k, v := range tests {
		assert.Equal(t, v, parseLevel(k), k)
	}
}
