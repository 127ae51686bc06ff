package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/packit/internal/database"
	"github.com/jask/packit/internal/database/repository"
)

// MaintenanceService houses destructive actions on the local store.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset deletes every stored trip. The schema is kept so the store stays usable.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"trip_items", "trips"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}

// DeleteTrip removes one of uid's trips along with its items.
func (s *MaintenanceService) DeleteTrip(ctx context.Context, uid, tripID string) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	err := repository.NewTripRepo(s.DB).Delete(ctx, uid, tripID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", tripID, err)
	}
	return nil
}
