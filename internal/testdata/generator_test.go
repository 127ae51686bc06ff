package testdata

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/packit/internal/database"
	"github.com/jask/packit/internal/normalize"
	"github.com/jask/packit/internal/store"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "packit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := store.NewSQLite(db)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ids, err := Seed(ctx, s, "u1", 3, rand.New(rand.NewSource(7)), now)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	raw, err := s.ListTrips(ctx, "u1")
	require.NoError(t, err)
	trips := normalize.List(raw)
	require.Len(t, trips, 3)
	require.Equal(t, "Tokyo", trips[0].Destination)

	one, err := s.FetchTrip(ctx, "u1", ids[1])
	require.NoError(t, err)
	c, err := normalize.Trip(one, ids[1])
	require.NoError(t, err)
	require.Equal(t, "Lisbon", c.Destination)
	require.NotEmpty(t, c.Items)
	require.Len(t, c.Steps(), 3)
	days, ok := c.DurationDays()
	require.True(t, ok)
	require.GreaterOrEqual(t, days, 3)
}
