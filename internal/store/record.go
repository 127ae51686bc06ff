package store

import (
	"encoding/json"
	"fmt"

	"github.com/jask/packit/internal/database/repository"
	"github.com/jask/packit/internal/trip"
)

// record is the snake_case layout of a stored trip.
type record struct {
	ID                      string          `json:"id"`
	Destination             string          `json:"destination"`
	StartDate               string          `json:"start_date"`
	EndDate                 string          `json:"end_date"`
	Airline                 string          `json:"airline"`
	TravelClass             string          `json:"travel_class"`
	Purpose                 string          `json:"purpose"`
	Status                  string          `json:"status"`
	AirlineLimit            float64         `json:"airline_limit"`
	TotalWeight             float64         `json:"total_weight"`
	SuitcaseSizeL           *int            `json:"suitcase_size_l"`
	SuitcaseDims            json.RawMessage `json:"suitcase_dims"`
	AcceptedRecommendations json.RawMessage `json:"accepted_recommendations"`
	PackingPlan             json.RawMessage `json:"packing_plan"`
	PackingSteps            json.RawMessage `json:"packing_steps"`
	Optimization            json.RawMessage `json:"optimization"`
	CreatedAt               string          `json:"created_at"`
}

type itemRecord struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Category string   `json:"category"`
	WeightG  *float64 `json:"weight_g,omitempty"`
}

func tripRow(uid, id string, p trip.Payload) (repository.Trip, error) {
	recs, err := json.Marshal(p.AcceptedRecommendations)
	if err != nil {
		return repository.Trip{}, fmt.Errorf("encode recommendations: %w", err)
	}
	steps, err := json.Marshal(p.PackingSteps)
	if err != nil {
		return repository.Trip{}, fmt.Errorf("encode steps: %w", err)
	}
	row := repository.Trip{
		ID:                      id,
		UID:                     uid,
		Destination:             p.Destination,
		StartDate:               p.StartDate,
		EndDate:                 p.EndDate,
		Airline:                 p.Airline,
		TravelClass:             p.TravelClass,
		Purpose:                 p.Purpose,
		Status:                  p.Status,
		AirlineLimit:            p.AirlineLimitKg,
		TotalWeight:             p.TotalWeightKg,
		AcceptedRecommendations: string(recs),
		PackingSteps:            string(steps),
		CreatedAt:               p.CreatedAt,
	}
	if p.SuitcaseSizeL > 0 {
		size := p.SuitcaseSizeL
		row.SuitcaseSizeL = &size
	}
	if row.SuitcaseDims, err = optionalJSON(p.SuitcaseDims); err != nil {
		return repository.Trip{}, err
	}
	if row.PackingPlan, err = optionalJSON(p.PackingPlan); err != nil {
		return repository.Trip{}, err
	}
	if row.Optimization, err = optionalJSON(p.Optimization); err != nil {
		return repository.Trip{}, err
	}
	if len(p.AISuggestionsRaw) > 0 && !trip.IsNull(p.AISuggestionsRaw) {
		raw := string(p.AISuggestionsRaw)
		row.AISuggestionsRaw = &raw
	}
	return row, nil
}

// optionalJSON encodes v, mapping nil pointers to a NULL column.
func optionalJSON[T any](v *T) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode column: %w", err)
	}
	s := string(data)
	return &s, nil
}

func rawOrNull(s *string) json.RawMessage {
	if s == nil || *s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(*s)
}

func recordFromRow(r repository.Trip) record {
	return record{
		ID:                      r.ID,
		Destination:             r.Destination,
		StartDate:               r.StartDate,
		EndDate:                 r.EndDate,
		Airline:                 r.Airline,
		TravelClass:             r.TravelClass,
		Purpose:                 r.Purpose,
		Status:                  r.Status,
		AirlineLimit:            r.AirlineLimit,
		TotalWeight:             r.TotalWeight,
		SuitcaseSizeL:           r.SuitcaseSizeL,
		SuitcaseDims:            rawOrNull(r.SuitcaseDims),
		AcceptedRecommendations: rawOrNull(&r.AcceptedRecommendations),
		PackingPlan:             rawOrNull(r.PackingPlan),
		PackingSteps:            rawOrNull(&r.PackingSteps),
		Optimization:            rawOrNull(r.Optimization),
		CreatedAt:               r.CreatedAt,
	}
}

func itemRecords(rows []repository.TripItem) []itemRecord {
	out := make([]itemRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, itemRecord{Name: r.Name, Quantity: r.Quantity, Category: r.Category, WeightG: r.WeightG})
	}
	return out
}
