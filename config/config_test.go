package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Redundancy/go-babel/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "babel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "numbers", cfg.Params)
	assert.Equal(t, layout.Default, cfg.Layout)
	assert.Equal(t, 4096, cfg.Generate.MaxAttempts)
	assert.Equal(t, ":3000", cfg.Server.Listen)
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
params: /var/lib/babel/numbers.cbor.zst
bookmarks: /var/lib/babel/bookmarks.db
layout:
  pages: 4
server:
  listen: 127.0.0.1:8080
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/var/lib/babel/numbers.cbor.zst", cfg.Params)
	assert.Equal(t, "/var/lib/babel/bookmarks.db", cfg.Bookmarks)
	assert.Equal(t, 4, cfg.Layout.Pages)
	assert.Equal(t, 80, cfg.Layout.Chars)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 4096, cfg.Generate.MaxAttempts)
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeConfig(t, "params: from-env\n")
	t.Setenv(EnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Params)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "parms: typo\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Params = ""
	cfg.Generate.MaxAttempts = 0
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Layout.Chars = 0

	err := cfg.Validate()
	require.Error(t, err)

	for _, fragment := range []string{"params", "max_attempts", "log.level", "log.format", "layout"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer

	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&out)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "page", 3)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.Contains(t, out.String(), `"page":3`)

	_, err = LogConfig{Level: "info", Format: "xml"}.NewLogger(&out)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
