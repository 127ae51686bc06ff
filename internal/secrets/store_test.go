package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "packit")}

	_, err := s.Get(BackendToken)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(" Backend ", "tok-123"))
	got, err := s.Get(BackendToken)
	require.NoError(t, err)
	require.Equal(t, "tok-123", got)

	data, err := os.ReadFile(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.NotContains(t, string(data), "tok-123")

	info, err := os.Stat(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Delete(BackendToken))
	_, err = s.Get(BackendToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNameRequired(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	require.Error(t, s.Put("  ", "x"))
	_, err := s.Get("")
	require.Error(t, err)
}

func TestDirRequired(t *testing.T) {
	require.Error(t, Store{}.Put(BackendToken, "x"))
}
