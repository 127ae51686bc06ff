// Package normalize maps persisted trip records of varying shape onto
// trip.Canonical.
//
// Records have been written by several service versions: field names drift
// between camelCase and snake_case, and the record may arrive bare or wrapped
// in a {trip} or {data:{trip}} envelope. Every strategy here is total: it
// either yields a value or reports no match, it never fails.
package normalize

import (
	"errors"

	"github.com/jask/packit/internal/trip"
)

// ErrNotFound is returned when no trip-shaped object can be located.
var ErrNotFound = errors.New("normalize: trip not found")

const (
	defaultPurpose = "Trip"
	defaultStatus  = trip.StatusCompleted
)

// located is a trip record found inside a response, together with the
// object that wrapped it (used for sibling fields such as items).
type located struct {
	record trip.Fields
	parent trip.Fields
}

// envelope tries to find a record in a decoded response.
type envelope struct {
	name   string
	locate func(root trip.Fields) (located, bool)
}

// envelopes are tried in order; the first match wins.
var envelopes = []envelope{
	{name: "data.trip", locate: dataTrip},
	{name: "trip", locate: wrappedTrip},
	{name: "bare", locate: bareTrip},
}

func dataTrip(root trip.Fields) (located, bool) {
	data, ok := object(root, "data")
	if !ok {
		return located{}, false
	}
	rec, ok := object(data, "trip")
	if !ok {
		return located{}, false
	}
	return located{record: rec, parent: data}, true
}

// wrappedTrip accepts any object under an explicit trip key, even one that
// carries neither destination nor id.
func wrappedTrip(root trip.Fields) (located, bool) {
	rec, ok := object(root, "trip")
	if !ok {
		return located{}, false
	}
	return located{record: rec, parent: root}, true
}

func bareTrip(root trip.Fields) (located, bool) {
	if !tripShaped(root) {
		return located{}, false
	}
	return located{record: root}, true
}

func tripShaped(f trip.Fields) bool {
	return f.Str("destination") != "" || f.Str("id", "tripId", "trip_id") != ""
}

func object(f trip.Fields, key string) (trip.Fields, bool) {
	raw, ok := f.Raw(key)
	if !ok {
		return nil, false
	}
	return trip.DecodeFields(raw)
}

// Trip decodes a fetched response and returns its canonical trip. fallbackID
// is used when the record carries no id of its own.
func Trip(raw []byte, fallbackID string) (trip.Canonical, error) {
	root, ok := trip.DecodeFields(raw)
	if !ok {
		return trip.Canonical{}, ErrNotFound
	}
	for _, env := range envelopes {
		loc, ok := env.locate(root)
		if !ok {
			continue
		}
		c := FromRecord(loc.record, fallbackID)
		if len(c.Items) == 0 {
			c.Items = siblingItems(loc.parent, root)
		}
		return c, nil
	}
	return trip.Canonical{}, ErrNotFound
}

// siblingItems reads items stored next to the record rather than inside it.
func siblingItems(candidates ...trip.Fields) []trip.Item {
	for _, f := range candidates {
		if f == nil {
			continue
		}
		if raw, ok := f.Raw("items"); ok {
			if items := trip.DecodeList(raw, trip.ItemFromRaw); len(items) > 0 {
				return items
			}
		}
	}
	return []trip.Item{}
}
