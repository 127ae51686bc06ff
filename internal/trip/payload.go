package trip

import (
	"encoding/json"
	"time"
)

// Payload is the trip record handed to the persistence collaborator.
type Payload struct {
	Destination             string              `json:"destination"`
	StartDate               string              `json:"startDate"`
	EndDate                 string              `json:"endDate"`
	Airline                 string              `json:"airline"`
	TravelClass             string              `json:"travelClass"`
	Purpose                 string              `json:"purpose"`
	Status                  string              `json:"status"`
	AirlineLimitKg          float64             `json:"airlineLimitKg"`
	TotalWeightKg           float64             `json:"totalWeightKg"`
	SuitcaseSizeL           int                 `json:"suitcaseSizeL"`
	SuitcaseDims            *Dims               `json:"suitcaseDims"`
	AcceptedRecommendations []Suggestion        `json:"acceptedRecommendations"`
	PackingPlan             *PackingPlan        `json:"packingPlan"`
	PackingSteps            []PackingStep       `json:"packingSteps"`
	AISuggestionsRaw        json.RawMessage     `json:"aiSuggestionsRaw,omitempty"`
	Optimization            *OptimizationResult `json:"optimization"`
	CreatedAt               string              `json:"createdAt,omitempty"`
}

// NewPayload assembles the persistence payload for d. Accepted
// recommendations are the selected suggestions. CreatedAt is left for the
// caller to stamp.
func NewPayload(d Draft) Payload {
	steps := []PackingStep{}
	if d.Plan != nil && d.Plan.Steps != nil {
		steps = d.Plan.Steps
	}
	size := d.Suitcase.VolumeLiters
	if size == 0 {
		size = DefaultSuitcaseL
	}
	return Payload{
		Destination:             d.Destination,
		StartDate:               d.StartDate,
		EndDate:                 d.EndDate,
		Airline:                 d.Airline,
		TravelClass:             d.TravelClass,
		Purpose:                 d.Purpose,
		Status:                  StatusCompleted,
		AirlineLimitKg:          d.LimitKg,
		TotalWeightKg:           d.TotalWeightKg,
		SuitcaseSizeL:           size,
		SuitcaseDims:            d.Suitcase.Dims,
		AcceptedRecommendations: SelectedSuggestions(d.Suggestions),
		PackingPlan:             d.Plan,
		PackingSteps:            steps,
		AISuggestionsRaw:        d.SuggestionsRaw,
		Optimization:            d.Optimization,
	}
}

// Stamp sets CreatedAt when it is still empty.
func (p Payload) Stamp(now time.Time) Payload {
	if p.CreatedAt == "" {
		p.CreatedAt = now.UTC().Format(time.RFC3339)
	}
	return p
}

// PackItem is an item as sent to the packing-steps endpoint, carrying the
// resolved count and weight alongside the item fields.
type PackItem struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Category Category `json:"category"`
	Weight   *float64 `json:"weight,omitempty"`
	Count    int      `json:"count"`
	AIWeight float64  `json:"aiWeight"`
}

// PackItems resolves count and weight for every item.
func PackItems(items []Item) []PackItem {
	out := make([]PackItem, 0, len(items))
	for _, it := range items {
		count := it.Quantity
		if count < 1 {
			count = 1
		}
		out = append(out, PackItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Category: it.Category,
			Weight:   it.Weight,
			Count:    count,
			AIWeight: it.WeightGrams(),
		})
	}
	return out
}

// AttachWeights copies per-index grams onto items. Items with
// no counterpart get a zero weight.
func AttachWeights(items []Item, grams []float64) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		w := 0.0
		if i < len(grams) {
			w = grams[i]
		}
		it.Weight = &w
		out[i] = it
	}
	return out
}
