package normalize

import (
	"encoding/json"
	"time"

	"github.com/jask/packit/internal/trip"
)

// FromRecord builds a canonical trip from a single decoded record. Each field
// is read under its current name first, then its legacy names, then
// defaulted.
func FromRecord(f trip.Fields, fallbackID string) trip.Canonical {
	c := trip.Canonical{
		ID:                      f.Str("id", "tripId", "trip_id"),
		Destination:             f.Str("destination"),
		StartDate:               f.Str("startDate", "start_date"),
		EndDate:                 f.Str("endDate", "end_date"),
		Airline:                 f.Str("airline"),
		TravelClass:             orDefault(f.Str("travelClass", "travel_class"), trip.DefaultTravelClass),
		Purpose:                 orDefault(f.Str("purpose"), defaultPurpose),
		Status:                  orDefault(f.Str("status"), defaultStatus),
		AirlineLimitKg:          trip.DefaultLimitKg,
		AcceptedRecommendations: []trip.Suggestion{},
		PackingSteps:            []trip.PackingStep{},
		Items:                   []trip.Item{},
	}
	if c.ID == "" {
		c.ID = fallbackID
	}
	if n, ok := f.Num("airlineLimitKg", "airline_limit"); ok {
		c.AirlineLimitKg = n
	}
	if n, ok := f.Num("totalWeightKg", "total_weight"); ok {
		c.TotalWeightKg = n
	}
	if n, ok := f.Num("suitcaseSizeL", "suitcase_size_l"); ok {
		size := int(n)
		c.SuitcaseSizeL = &size
	}
	if raw, ok := f.Raw("suitcaseDims", "suitcase_dims"); ok {
		c.SuitcaseDims = trip.DimsFrom(raw)
	}
	if raw, ok := f.Raw("acceptedRecommendations", "accepted_recommendations"); ok {
		c.AcceptedRecommendations = orEmpty(trip.DecodeList(raw, trip.SuggestionFromRaw))
	}
	if raw, ok := f.Raw("packingPlan", "packing_plan"); ok && isObject(raw) {
		var plan trip.PackingPlan
		_ = json.Unmarshal(raw, &plan)
		c.PackingPlan = &plan
	}
	if raw, ok := f.Raw("packingSteps", "packing_steps"); ok {
		c.PackingSteps = orEmpty(trip.DecodeList(raw, trip.StepFromRaw))
	}
	if raw, ok := f.Raw("optimization"); ok && isObject(raw) {
		var opt trip.OptimizationResult
		_ = json.Unmarshal(raw, &opt)
		c.Optimization = &opt
	}
	if raw, ok := f.Raw("items"); ok {
		c.Items = orEmpty(trip.DecodeList(raw, trip.ItemFromRaw))
	}
	if ts, ok := trip.ParseDate(f.Str("createdAt", "created_at")); ok {
		c.CreatedAt = ts
	} else if n, ok := f.Num("createdAt", "created_at"); ok && n > 0 {
		c.CreatedAt = time.UnixMilli(int64(n)).UTC()
	}
	return c
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func isObject(raw json.RawMessage) bool {
	_, ok := trip.DecodeFields(raw)
	return ok
}
