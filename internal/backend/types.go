package backend

import (
	"encoding/json"

	"github.com/jask/packit/internal/trip"
)

// Dates is the trip date range sent with suggestion requests.
type Dates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SuggestRequest struct {
	Destination string      `json:"destination"`
	Dates       Dates       `json:"dates"`
	Airline     string      `json:"airline"`
	TravelClass string      `json:"travelClass"`
	Purpose     string      `json:"purpose"`
	Items       []trip.Item `json:"items"`
}

// SuggestResponse carries the decoded suggestions and the raw body, which is
// persisted alongside the trip.
type SuggestResponse struct {
	Suggestions []trip.Suggestion
	Raw         json.RawMessage
}

// legacySuggestionGroups are the grouped string lists older backends return
// instead of a suggestions array.
var legacySuggestionGroups = []string{"missing", "climate", "purpose"}

// UnmarshalJSON reads {suggestions:[...]} and falls back to the grouped
// {missing,climate,purpose} string lists.
func (r *SuggestResponse) UnmarshalJSON(data []byte) error {
	out := SuggestResponse{Raw: append(json.RawMessage(nil), data...)}
	f, _ := trip.DecodeFields(data)
	if raw, ok := f.Raw("suggestions"); ok {
		out.Suggestions = trip.DecodeList(raw, trip.SuggestionFromRaw)
	} else {
		for _, group := range legacySuggestionGroups {
			raw, ok := f.Raw(group)
			if !ok {
				continue
			}
			for _, s := range trip.DecodeList(raw, trip.SuggestionFromRaw) {
				if s.Category == "" {
					s.Category = group
				}
				out.Suggestions = append(out.Suggestions, s)
			}
		}
	}
	*r = out
	return nil
}

type WeightRequest struct {
	Items []trip.Item `json:"items"`
}

// WeightResponse holds the estimated grams per request item (by index)
// and the total. The service echoes each item back with an aiWeight; any
// weight already on the echoed item is the previous estimate and is ignored.
type WeightResponse struct {
	Grams  []float64
	TotalG float64
}

func (r *WeightResponse) UnmarshalJSON(data []byte) error {
	f, _ := trip.DecodeFields(data)
	out := WeightResponse{}
	if raw, ok := f.Raw("items"); ok {
		out.Grams = trip.DecodeList(raw, aiWeight)
	}
	out.TotalG, _ = f.Num("totalG", "total_g", "totalGrams")
	*r = out
	return nil
}

func aiWeight(raw json.RawMessage) (float64, bool) {
	f, _ := trip.DecodeFields(raw)
	g, _ := f.Num("aiWeight", "ai_weight")
	return g, true
}

type OptimizeRequest struct {
	Items   []trip.Item `json:"items"`
	LimitKg float64     `json:"limitKg"`
}

type StepsRequest struct {
	Items                   []trip.PackItem   `json:"items"`
	RecommendationsSelected []trip.Suggestion `json:"recommendationsSelected"`
	SuitcaseSizeL           int               `json:"suitcaseSizeL"`
	SuitcaseDims            *trip.Dims        `json:"suitcaseDims"`
	LuggageType             string            `json:"luggageType"`
}

type LuggageRequest struct {
	Query string `json:"query"`
}

// LuggageResponse is the result of a suitcase lookup. Dims is nil when the
// backend could not identify the luggage.
type LuggageResponse struct {
	Dims   *trip.Dims
	Liters float64
}

func (r *LuggageResponse) UnmarshalJSON(data []byte) error {
	f, _ := trip.DecodeFields(data)
	out := LuggageResponse{}
	if raw, ok := f.Raw("dims", "suitcaseDims"); ok {
		var d trip.Dims
		_ = json.Unmarshal(raw, &d)
		out.Dims = &d
	}
	out.Liters, _ = f.Num("liters", "suitcaseSizeL")
	*r = out
	return nil
}

type saveTripRequest struct {
	UID     string       `json:"uid"`
	TripID  *string      `json:"tripId"`
	Payload trip.Payload `json:"payload"`
}

type saveTripResponse struct {
	TripID string
}

// UnmarshalJSON accepts the id at the top level or under data.
func (r *saveTripResponse) UnmarshalJSON(data []byte) error {
	f, _ := trip.DecodeFields(data)
	id := f.Str("tripId", "trip_id", "id")
	if id == "" {
		if raw, ok := f.Raw("data"); ok {
			inner, _ := trip.DecodeFields(raw)
			id = inner.Str("tripId", "trip_id", "id")
		}
	}
	r.TripID = id
	return nil
}

type saveItemsRequest struct {
	UID    string      `json:"uid"`
	TripID string      `json:"tripId"`
	Items  []trip.Item `json:"items"`
}

type fetchTripRequest struct {
	UID    string `json:"uid"`
	TripID string `json:"tripId"`
}

type listTripsRequest struct {
	UID string `json:"uid"`
}
