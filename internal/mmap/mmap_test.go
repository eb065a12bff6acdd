package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("catapult graph payload")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, content, m.Data)

	require.NoError(t, m.Close())
	require.Nil(t, m.Data)

	// Close is idempotent.
	require.NoError(t, m.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	m, err := Open(path)
	require.NoError(t, err)
	require.Nil(t, m.Data)
	require.NoError(t, m.Close())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}
