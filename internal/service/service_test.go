package service

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/database"
	"github.com/jask/packit/internal/store"
	"github.com/jask/packit/internal/trip"
)

// rawStore serves fixed responses, the way a remote backend would.
type rawStore struct {
	store.Store
	fetch    []byte
	list     []byte
	fetchErr error
}

func (r rawStore) FetchTrip(context.Context, string, string) ([]byte, error) {
	return r.fetch, r.fetchErr
}

func (r rawStore) ListTrips(context.Context, string) ([]byte, error) {
	return r.list, nil
}

func newLocal(t *testing.T) (*store.SQLite, *TripService) {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "packit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	local := store.NewSQLite(db)
	return local, &TripService{Store: local, UID: "u1", Log: zerolog.Nop()}
}

func draft(dest string) trip.Draft {
	d := trip.NewDraft()
	d.Destination = dest
	d.StartDate = "2025-03-01"
	d.EndDate = "2025-03-10"
	return d
}

func TestLoadFromLocalStore(t *testing.T) {
	ctx := context.Background()
	local, svc := newLocal(t)

	id, err := local.SaveTrip(ctx, "u1", nil, trip.NewPayload(draft("Tokyo")))
	require.NoError(t, err)
	require.NoError(t, local.SaveItems(ctx, "u1", id, []trip.Item{trip.NewItem("Jacket", 1, trip.CategoryClothing)}))

	c, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, c.ID)
	require.Equal(t, "Tokyo", c.Destination)
	require.Len(t, c.Items, 1)
	days, ok := c.DurationDays()
	require.True(t, ok)
	require.Equal(t, 9, days)
}

func TestLoadNotFound(t *testing.T) {
	ctx := context.Background()
	_, svc := newLocal(t)

	_, err := svc.Load(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	remote := &TripService{Store: rawStore{fetchErr: &backend.Error{Op: "fetch_trip", StatusCode: http.StatusNotFound, Err: errors.New("not found")}}, Log: zerolog.Nop()}
	_, err = remote.Load(ctx, "t1")
	require.ErrorIs(t, err, ErrNotFound)

	shapeless := &TripService{Store: rawStore{fetch: []byte(`{"ok":true}`)}, Log: zerolog.Nop()}
	_, err = shapeless.Load(ctx, "t1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadTransportError(t *testing.T) {
	svc := &TripService{Store: rawStore{fetchErr: &backend.Error{Op: "fetch_trip", Err: errors.New("connection refused")}}, Log: zerolog.Nop()}
	_, err := svc.Load(context.Background(), "t1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc := &TripService{Store: rawStore{list: []byte(`{"data":{"trips":[
		{"id":"a","destination":"Lima","createdAt":"2025-01-01T00:00:00Z"},
		{"id":"b","destination":"Oslo"},
		{"id":"c","destination":"Rome","createdAt":"2025-02-01T00:00:00Z"}
	]}}`)}, Log: zerolog.Nop()}

	trips, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 3)
	require.Equal(t, []string{"c", "a", "b"}, []string{trips[0].ID, trips[1].ID, trips[2].ID})
}

func TestListLocalAndReset(t *testing.T) {
	ctx := context.Background()
	local, svc := newLocal(t)

	older := trip.NewPayload(draft("Lima")).Stamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := trip.NewPayload(draft("Rome")).Stamp(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	_, err := local.SaveTrip(ctx, "u1", nil, older)
	require.NoError(t, err)
	_, err = local.SaveTrip(ctx, "u1", nil, newer)
	require.NoError(t, err)
	_, err = local.SaveTrip(ctx, "someone-else", nil, newer)
	require.NoError(t, err)

	trips, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	require.Equal(t, "Rome", trips[0].Destination)
	require.Equal(t, "Lima", trips[1].Destination)

	m := &MaintenanceService{DB: local.DB}
	require.NoError(t, m.Reset(ctx))
	trips, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, trips)
}

func TestDeleteTrip(t *testing.T) {
	ctx := context.Background()
	local, svc := newLocal(t)

	id, err := local.SaveTrip(ctx, "u1", nil, trip.NewPayload(draft("Oslo")))
	require.NoError(t, err)
	require.NoError(t, local.SaveItems(ctx, "u1", id, []trip.Item{trip.NewItem("Scarf", 1, trip.CategoryAccessories)}))

	m := &MaintenanceService{DB: local.DB}
	require.ErrorIs(t, m.DeleteTrip(ctx, "someone-else", id), ErrNotFound)
	require.NoError(t, m.DeleteTrip(ctx, "u1", id))
	_, err = svc.Load(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, m.DeleteTrip(ctx, "u1", id), ErrNotFound)
}

func TestResetWithoutDB(t *testing.T) {
	require.Error(t, (&MaintenanceService{}).Reset(context.Background()))
	require.Error(t, (&MaintenanceService{}).DeleteTrip(context.Background(), "u1", "t1"))
}
