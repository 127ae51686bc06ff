package normalize

import (
	"encoding/json"

	"github.com/jask/packit/internal/trip"
)

// List decodes a trip listing. The listing may be a bare array or wrapped as
// {trips}, {data:{trips}} or {data:[...]}. Entries that are not trip-shaped
// are skipped; a listing that cannot be read at all yields an empty slice.
func List(raw []byte) []trip.Canonical {
	out := []trip.Canonical{}
	for _, rec := range listEntries(raw) {
		f, ok := trip.DecodeFields(rec)
		if !ok {
			continue
		}
		if inner, ok := object(f, "trip"); ok {
			f = inner
		}
		if !tripShaped(f) {
			continue
		}
		out = append(out, FromRecord(f, ""))
	}
	return out
}

func listEntries(raw []byte) []json.RawMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries
	}
	root, ok := trip.DecodeFields(raw)
	if !ok {
		return nil
	}
	if data, ok := root.Raw("data"); ok {
		return listEntries(data)
	}
	if trips, ok := root.Raw("trips"); ok {
		return listEntries(trips)
	}
	return nil
}
