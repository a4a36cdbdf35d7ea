package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()

	want := Manifest{Name: "foo", Version: "1.2.3", Main: "index.js"}
	require.NoError(t, Write(dir, want))

	// Verify file exists
	_, err := os.Stat(filepath.Join(dir, Filename))
	require.NoError(t, err)

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRead_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(dir)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRead_InvalidJSON(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, Filename)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0640))

	_, err := Read(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing manifest file")
}

func TestRead_MissingMain(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, Filename)
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"bar","version":"0.1.0"}`), 0640))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "bar", got.Name)
	assert.Equal(t, "0.1.0", got.Version)
	assert.Empty(t, got.Main)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))

	require.NoError(t, Write(dir, Manifest{Name: "x", Version: "0.0.1"}))
	assert.True(t, Exists(dir))
}
