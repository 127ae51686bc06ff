package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMigratedCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "packit.db")

	db, err := OpenMigrated(path)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&n))
	require.Zero(t, n)
	require.NoError(t, db.Close())

	db, err = OpenMigrated(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`SELECT COUNT(*) FROM trip_items`)
		return err
	}))
}
