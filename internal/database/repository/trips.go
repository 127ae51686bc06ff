package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")

const tripColumns = `id, uid, destination, start_date, end_date, airline, travel_class, purpose, status,
	 airline_limit, total_weight, suitcase_size_l, suitcase_dims, accepted_recommendations,
	 packing_plan, packing_steps, optimization, ai_suggestions_raw, created_at, updated_at`

// TripRepo handles trips.
type TripRepo struct {
	db *sql.DB
}

func NewTripRepo(db *sql.DB) *TripRepo {
	return &TripRepo{db: db}
}

// Upsert inserts the trip or overwrites every column except uid and created_at.
func (r *TripRepo) Upsert(ctx context.Context, t Trip) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO trips(id, uid, destination, start_date, end_date, airline, travel_class, purpose, status,
	 airline_limit, total_weight, suitcase_size_l, suitcase_dims, accepted_recommendations,
	 packing_plan, packing_steps, optimization, ai_suggestions_raw, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 destination=excluded.destination,
	 start_date=excluded.start_date,
	 end_date=excluded.end_date,
	 airline=excluded.airline,
	 travel_class=excluded.travel_class,
	 purpose=excluded.purpose,
	 status=excluded.status,
	 airline_limit=excluded.airline_limit,
	 total_weight=excluded.total_weight,
	 suitcase_size_l=excluded.suitcase_size_l,
	 suitcase_dims=excluded.suitcase_dims,
	 accepted_recommendations=excluded.accepted_recommendations,
	 packing_plan=excluded.packing_plan,
	 packing_steps=excluded.packing_steps,
	 optimization=excluded.optimization,
	 ai_suggestions_raw=excluded.ai_suggestions_raw,
	 updated_at=CURRENT_TIMESTAMP;
	`, t.ID, t.UID, t.Destination, t.StartDate, t.EndDate, t.Airline, t.TravelClass, t.Purpose, t.Status,
		t.AirlineLimit, t.TotalWeight, t.SuitcaseSizeL, t.SuitcaseDims, t.AcceptedRecommendations,
		t.PackingPlan, t.PackingSteps, t.Optimization, t.AISuggestionsRaw, t.CreatedAt)
	return err
}

// Get returns the trip owned by uid.
func (r *TripRepo) Get(ctx context.Context, uid, id string) (Trip, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ? AND uid = ?`, id, uid)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Trip{}, ErrNotFound
	}
	return t, err
}

// ListByUser returns the user's trips, newest first.
func (r *TripRepo) ListByUser(ctx context.Context, uid string) ([]Trip, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE uid = ? ORDER BY created_at DESC, id`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TripRepo) Delete(ctx context.Context, uid, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ? AND uid = ?`, id, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (Trip, error) {
	var t Trip
	var size sql.NullInt64
	err := s.Scan(&t.ID, &t.UID, &t.Destination, &t.StartDate, &t.EndDate, &t.Airline, &t.TravelClass,
		&t.Purpose, &t.Status, &t.AirlineLimit, &t.TotalWeight, &size, &t.SuitcaseDims,
		&t.AcceptedRecommendations, &t.PackingPlan, &t.PackingSteps, &t.Optimization,
		&t.AISuggestionsRaw, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Trip{}, err
	}
	if size.Valid {
		v := int(size.Int64)
		t.SuitcaseSizeL = &v
	}
	return t, nil
}
