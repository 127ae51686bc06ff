package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/packit/internal/database"
	"github.com/jask/packit/internal/database/repository"
	"github.com/jask/packit/internal/trip"
)

// SQLite stores trips in the local database. Records are emitted with
// snake_case keys, the layout older service versions used.
type SQLite struct {
	DB    *sql.DB
	Trips *repository.TripRepo
	Items *repository.ItemRepo
}

// NewSQLite wraps an open, migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db, Trips: repository.NewTripRepo(db), Items: repository.NewItemRepo(db)}
}

func (s *SQLite) SaveTrip(ctx context.Context, uid string, tripID *string, p trip.Payload) (string, error) {
	id := uuid.NewString()
	if tripID != nil && *tripID != "" {
		id = *tripID
		existing, err := s.Trips.Get(ctx, uid, id)
		if err != nil {
			return "", s.mapErr(err)
		}
		p.CreatedAt = existing.CreatedAt
	}
	if p.CreatedAt == "" {
		p = p.Stamp(database.Now())
	}
	row, err := tripRow(uid, id, p)
	if err != nil {
		return "", err
	}
	if err := s.Trips.Upsert(ctx, row); err != nil {
		return "", fmt.Errorf("save trip: %w", err)
	}
	return id, nil
}

func (s *SQLite) SaveItems(ctx context.Context, uid, tripID string, items []trip.Item) error {
	if _, err := s.Trips.Get(ctx, uid, tripID); err != nil {
		return s.mapErr(err)
	}
	rows := make([]repository.TripItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, repository.TripItem{
			ID:       uuid.NewString(),
			Name:     it.Name,
			Quantity: it.Quantity,
			Category: string(it.Category),
			WeightG:  it.Weight,
		})
	}
	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		return s.Items.ReplaceTx(ctx, tx, tripID, rows)
	})
}

// FetchTrip returns {"trip": record, "items": [...]}.
func (s *SQLite) FetchTrip(ctx context.Context, uid, tripID string) ([]byte, error) {
	row, err := s.Trips.Get(ctx, uid, tripID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	items, err := s.Items.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return json.Marshal(map[string]any{
		"trip":  recordFromRow(row),
		"items": itemRecords(items),
	})
}

// ListTrips returns {"trips": [record...]}, newest first.
func (s *SQLite) ListTrips(ctx context.Context, uid string) ([]byte, error) {
	rows, err := s.Trips.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	records := make([]record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return json.Marshal(map[string]any{"trips": records})
}

func (s *SQLite) mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
