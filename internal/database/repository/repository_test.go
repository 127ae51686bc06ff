package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/packit/internal/database"
	"github.com/jask/packit/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.OpenMigrated(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestTripUpsertGetList(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewTripRepo(db)

	size := 60
	first := repository.Trip{
		ID: "t1", UID: "u1", Destination: "Tokyo", StartDate: "2025-03-01", EndDate: "2025-03-10",
		TravelClass: "Economy", Purpose: "Vacation", Status: "completed", AirlineLimit: 23, TotalWeight: 18.5,
		SuitcaseSizeL: &size, AcceptedRecommendations: "[]", PackingSteps: "[]",
		PackingPlan: strPtr(`{"steps":[]}`), CreatedAt: "2025-02-01T10:00:00Z",
	}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, repository.Trip{
		ID: "t2", UID: "u1", Destination: "Lima", AcceptedRecommendations: "[]", PackingSteps: "[]",
		Status: "completed", CreatedAt: "2025-02-05T10:00:00Z",
	}))
	require.NoError(t, repo.Upsert(ctx, repository.Trip{
		ID: "t3", UID: "someone-else", Destination: "Oslo", AcceptedRecommendations: "[]", PackingSteps: "[]",
		Status: "completed", CreatedAt: "2025-02-06T10:00:00Z",
	}))

	got, err := repo.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Equal(t, "Tokyo", got.Destination)
	require.Equal(t, 18.5, got.TotalWeight)
	require.NotNil(t, got.SuitcaseSizeL)
	require.Equal(t, 60, *got.SuitcaseSizeL)
	require.Nil(t, got.SuitcaseDims)
	require.Equal(t, `{"steps":[]}`, *got.PackingPlan)
	require.False(t, got.UpdatedAt.IsZero())

	_, err = repo.Get(ctx, "someone-else", "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	trips, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trips, 2)
	require.Equal(t, "t2", trips[0].ID)
	require.Nil(t, trips[0].SuitcaseSizeL)

	first.Destination = "Kyoto"
	first.UID = "hijack"
	require.NoError(t, repo.Upsert(ctx, first))
	got, err = repo.Get(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Equal(t, "Kyoto", got.Destination)
}

func TestItemsReplaceAndCascade(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	trips := repository.NewTripRepo(db)
	items := repository.NewItemRepo(db)

	require.NoError(t, trips.Upsert(ctx, repository.Trip{
		ID: "t1", UID: "u1", Destination: "Tokyo", AcceptedRecommendations: "[]", PackingSteps: "[]",
		Status: "completed", CreatedAt: "2025-02-01T10:00:00Z",
	}))

	w := 1200.0
	replace := func(list []repository.TripItem) {
		require.NoError(t, database.WithTx(ctx, db, func(tx *sql.Tx) error {
			return items.ReplaceTx(ctx, tx, "t1", list)
		}))
	}
	replace([]repository.TripItem{
		{ID: "i1", Name: "Boots", Quantity: 1, Category: "Shoes", WeightG: &w},
		{ID: "i2", Name: "Socks", Quantity: 5, Category: "Clothing"},
	})
	got, err := items.ListByTrip(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Boots", got[0].Name)
	require.Equal(t, 1200.0, *got[0].WeightG)
	require.Equal(t, 1, got[1].Position)
	require.Nil(t, got[1].WeightG)

	replace([]repository.TripItem{{ID: "i3", Name: "Hat", Quantity: 1, Category: "Accessories"}})
	got, err = items.ListByTrip(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, trips.Delete(ctx, "u1", "t1"))
	got, err = items.ListByTrip(ctx, "t1")
	require.NoError(t, err)
	require.Empty(t, got)
	require.ErrorIs(t, trips.Delete(ctx, "u1", "t1"), repository.ErrNotFound)
}

func TestItemsRequireTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	items := repository.NewItemRepo(db)

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		return items.ReplaceTx(ctx, tx, "missing", []repository.TripItem{{ID: "i1", Name: "Hat", Quantity: 1, Category: "Other"}})
	})
	require.Error(t, err)
}
