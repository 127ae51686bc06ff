package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("PACKIT_CONFIG", filepath.Join(dir, "config", "packit", "config.toml"))
	t.Setenv("PACKIT_STORE_DRIVER", "sqlite")
	t.Setenv("PACKIT_DATABASE_PATH", filepath.Join(dir, "packit.db"))
	t.Setenv("PACKIT_LOG_PATH", filepath.Join(dir, "packit.log"))
	t.Setenv("PACKIT_API_KEY", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTripsEmpty(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "trips")
	require.NoError(t, err)
	require.Contains(t, out, "No trips yet")
}

func TestSeedListShowExport(t *testing.T) {
	dir := sandbox(t)

	out, err := execute(t, "seed", "--count", "2")
	require.NoError(t, err)
	require.Contains(t, out, "Seeded 2 trips.")

	out, err = execute(t, "trips")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "Tokyo")
	id := strings.Fields(lines[1])[0]

	out, err = execute(t, "show", id)
	require.NoError(t, err)
	require.Contains(t, out, "Tokyo")
	require.Contains(t, out, "ANA")

	path := filepath.Join(dir, "tokyo.toml")
	out, err = execute(t, "show", id, "--export", path)
	require.NoError(t, err)
	require.Contains(t, out, "Exported Tokyo")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `destination = "Tokyo"`)

	out, err = execute(t, "delete", id)
	require.NoError(t, err)
	require.Contains(t, out, "Deleted trip")
	_, err = execute(t, "show", id)
	require.Error(t, err)
	_, err = execute(t, "delete", id)
	require.Error(t, err)

	_, err = execute(t, "reset")
	require.Error(t, err)
	out, err = execute(t, "reset", "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "cleared")
	out, err = execute(t, "trips")
	require.NoError(t, err)
	require.Contains(t, out, "No trips yet")
}

func TestShowMissingTrip(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "show", "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestConfigInitAndToken(t *testing.T) {
	dir := sandbox(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "config.toml")
	data, err := os.ReadFile(filepath.Join(dir, "config", "packit", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "sqlite")

	out, err = execute(t, "config", "set-token", "s3cret")
	require.NoError(t, err)
	require.Contains(t, out, "Token saved.")
	_, err = os.Stat(filepath.Join(dir, "config", "packit", "keys.json"))
	require.NoError(t, err)
}

func TestUnknownDriver(t *testing.T) {
	sandbox(t)
	t.Setenv("PACKIT_STORE_DRIVER", "floppy")
	_, err := execute(t, "trips")
	require.Error(t, err)
}
