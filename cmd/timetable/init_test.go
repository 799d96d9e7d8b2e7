package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffold_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "styles", "theme.conf")

	require.NoError(t, scaffold(path, []byte("background #000000\n"), false))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "background #000000\n", string(content))
}

func TestScaffold_KeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	require.NoError(t, scaffold(path, []byte("new"), false))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))

	require.NoError(t, scaffold(path, []byte("new"), true))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.csv")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	fs := statFile(path)
	assert.True(t, fs.Exists)
	assert.Equal(t, "2.0 kB", fs.Size)
	assert.NotEmpty(t, fs.Modified)

	missing := statFile(filepath.Join(dir, "missing.csv"))
	assert.False(t, missing.Exists)
	assert.Empty(t, missing.Error)
	assert.Empty(t, missing.Size)
}
