package repository

import (
	"context"
	"database/sql"
)

// ItemRepo handles trip_items.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// ReplaceTx swaps the trip's items for items inside tx. Positions follow
// slice order.
func (r *ItemRepo) ReplaceTx(ctx context.Context, tx *sql.Tx, tripID string, items []TripItem) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_items WHERE trip_id = ?`, tripID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO trip_items(id, trip_id, position, name, quantity, category, weight_g, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, it.ID, tripID, i, it.Name, it.Quantity, it.Category, it.WeightG); err != nil {
			return err
		}
	}
	return nil
}

func (r *ItemRepo) ListByTrip(ctx context.Context, tripID string) ([]TripItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, trip_id, position, name, quantity, category, weight_g FROM trip_items WHERE trip_id = ? ORDER BY position`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TripItem
	for rows.Next() {
		var it TripItem
		if err := rows.Scan(&it.ID, &it.TripID, &it.Position, &it.Name, &it.Quantity, &it.Category, &it.WeightG); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
