package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	content := []byte("mapped file content")
	require.NoError(t, os.WriteFile(path, content, 0600))

	buf, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, content, buf.Bytes())
	assert.Equal(t, len(content), buf.Len())

	require.NoError(t, buf.Close())
}

func TestOpen_MissingFile(t *testing.T) {
	buf, err := Open(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.Error(t, err)
	assert.Nil(t, buf)
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	buf, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, buf.Len())
	assert.NoError(t, buf.Close())
}

func TestClose_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0600))

	buf, err := Open(path)
	require.NoError(t, err)

	assert.NoError(t, buf.Close())
	assert.NoError(t, buf.Close())
}
