// Package service holds the read-side operations behind the trip list and
// summary screens.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/normalize"
	"github.com/jask/packit/internal/store"
	"github.com/jask/packit/internal/trip"
)

// ErrNotFound is returned when a trip cannot be located for the user.
var ErrNotFound = errors.New("trip not found")

// TripService loads persisted trips for one user and resolves their shape.
type TripService struct {
	Store store.Store
	UID   string
	Log   zerolog.Logger
}

// Load fetches tripID and normalizes it. Missing trips and responses without
// a recognizable trip both yield ErrNotFound.
func (s *TripService) Load(ctx context.Context, tripID string) (trip.Canonical, error) {
	raw, err := s.Store.FetchTrip(ctx, s.UID, tripID)
	if err != nil {
		if backend.IsNotFound(err) || errors.Is(err, store.ErrNotFound) {
			return trip.Canonical{}, ErrNotFound
		}
		return trip.Canonical{}, fmt.Errorf("fetch trip %s: %w", tripID, err)
	}
	c, err := normalize.Trip(raw, tripID)
	if err != nil {
		s.Log.Warn().Str("trip_id", tripID).Int("bytes", len(raw)).Msg("unrecognized trip response")
		return trip.Canonical{}, ErrNotFound
	}
	return c, nil
}

// List returns the user's trips, newest first. Trips without a creation
// time sort last in the order the store returned them.
func (s *TripService) List(ctx context.Context) ([]trip.Canonical, error) {
	raw, err := s.Store.ListTrips(ctx, s.UID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	trips := normalize.List(raw)
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	s.Log.Debug().Int("count", len(trips)).Msg("listed trips")
	return trips, nil
}
