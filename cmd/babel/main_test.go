package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
params: %s
bookmarks: %s
layout:
  walls: 4
  shelves: 5
  books: 32
  pages: 4
  lines: 2
  chars: 5
log:
  level: warn
`

func writeTestConfig(t *testing.T) (configPath, dir string) {
	dir = t.TempDir()
	configPath = filepath.Join(dir, "babel.yaml")

	content := fmt.Sprintf(
		testConfig,
		filepath.Join(dir, "numbers.cbor.zst"),
		filepath.Join(dir, "bookmarks.db"),
	)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	return configPath, dir
}

func run(t *testing.T, configPath string, args ...string) error {
	t.Helper()
	return app.Run(append([]string{"babel", "--config", configPath}, args...))
}

func TestGenerateThenRead(t *testing.T) {
	configPath, dir := writeTestConfig(t)

	require.NoError(t, run(t, configPath, "generate"))
	assert.FileExists(t, filepath.Join(dir, "numbers.cbor.zst"))

	out := filepath.Join(dir, "book.txt")
	require.NoError(t, run(t, configPath, "book", "1.1.1.1.1", out))

	book, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, book, 40)

	assert.NoError(t, run(t, configPath, "page", "3.2.4.7.2"))
	assert.NoError(t, run(t, configPath, "--pretty", "i", "3.2.4.7.2"))
	assert.NoError(t, run(t, configPath, "random"))
	assert.NoError(t, run(t, configPath, "search", "--mode", "chars", "hello"))
	assert.NoError(t, run(t, configPath, "bookmark", "Zz9"))
}

func TestMissingParameters(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	err := run(t, configPath, "page", "1.1.1.1.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "babel generate")
}

func TestUsageErrors(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	assert.Error(t, run(t, configPath, "page"))
	assert.Error(t, run(t, configPath, "book"))
	assert.Error(t, run(t, configPath, "bookmark", "a", "b"))
	assert.Error(t, run(t, configPath, "search", "--mode", "regex", "abc"))
}
