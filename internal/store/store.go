// Package store persists completed trips, either through the packing service
// or in a local SQLite database.
package store

import (
	"context"
	"errors"

	"github.com/jask/packit/internal/trip"
)

// ErrNotFound is returned when a trip does not exist for the user.
var ErrNotFound = errors.New("store: trip not found")

// Store is the persistence collaborator. FetchTrip and ListTrips return raw
// records; callers resolve their shape with the normalize package.
type Store interface {
	// SaveTrip creates a trip when tripID is nil, otherwise overwrites it,
	// and returns the trip's id.
	SaveTrip(ctx context.Context, uid string, tripID *string, p trip.Payload) (string, error)
	SaveItems(ctx context.Context, uid, tripID string, items []trip.Item) error
	FetchTrip(ctx context.Context, uid, tripID string) ([]byte, error)
	ListTrips(ctx context.Context, uid string) ([]byte, error)
}
