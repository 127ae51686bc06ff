package wizard

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/trip"
)

var errDown = errors.New("connection refused")

// fakeBackend answers with canned responses and records the call order.
type fakeBackend struct {
	calls []string

	suggestions []trip.Suggestion
	weighed     []float64 // grams per item
	plan        trip.PackingPlan
	luggage     backend.LuggageResponse

	failSuggest, failWeigh, failOptimize, failSteps, failLuggage bool

	lastWeigh    backend.WeightRequest
	lastSteps    backend.StepsRequest
	lastOptimize backend.OptimizeRequest
}

func (f *fakeBackend) Suggest(_ context.Context, _ backend.SuggestRequest) (backend.SuggestResponse, error) {
	f.calls = append(f.calls, "suggest")
	if f.failSuggest {
		return backend.SuggestResponse{}, errDown
	}
	raw, _ := json.Marshal(map[string]any{"suggestions": f.suggestions})
	return backend.SuggestResponse{Suggestions: f.suggestions, Raw: raw}, nil
}

func (f *fakeBackend) Weigh(_ context.Context, req backend.WeightRequest) (backend.WeightResponse, error) {
	f.calls = append(f.calls, "weigh")
	f.lastWeigh = req
	if f.failWeigh {
		return backend.WeightResponse{}, errDown
	}
	// Reply the way the service does: the request items echoed back, each
	// with an aiWeight, decoded through the real response type.
	type echoed struct {
		trip.Item
		AIWeight float64 `json:"aiWeight"`
	}
	body := struct {
		Items  []echoed `json:"items"`
		TotalG float64  `json:"totalG"`
	}{}
	for i, it := range req.Items {
		g := 0.0
		if i < len(f.weighed) {
			g = f.weighed[i]
		}
		body.Items = append(body.Items, echoed{Item: it, AIWeight: g})
		body.TotalG += g
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return backend.WeightResponse{}, err
	}
	var resp backend.WeightResponse
	err = json.Unmarshal(raw, &resp)
	return resp, err
}

func (f *fakeBackend) Optimize(_ context.Context, req backend.OptimizeRequest) (trip.OptimizationResult, error) {
	f.calls = append(f.calls, "optimize")
	f.lastOptimize = req
	if f.failOptimize {
		return trip.OptimizationResult{}, errDown
	}
	return trip.OptimizationResult{Keep: req.Items[:1], Drop: req.Items[1:], TotalGrams: 24300, LimitGrams: req.LimitKg * 1000}, nil
}

func (f *fakeBackend) PackingSteps(_ context.Context, req backend.StepsRequest) (trip.PackingPlan, error) {
	f.calls = append(f.calls, "steps")
	f.lastSteps = req
	if f.failSteps {
		return trip.PackingPlan{}, errDown
	}
	return f.plan, nil
}

func (f *fakeBackend) LookupLuggage(_ context.Context, _ backend.LuggageRequest) (backend.LuggageResponse, error) {
	f.calls = append(f.calls, "luggage")
	if f.failLuggage {
		return backend.LuggageResponse{}, errDown
	}
	return f.luggage, nil
}

// fakeStore records saves; FetchTrip and ListTrips are unused by the wizard.
type fakeStore struct {
	calls     []string
	tripIDs   []*string
	payloads  []trip.Payload
	items     [][]trip.Item
	failTrip  bool
	failItems bool
}

func (f *fakeStore) SaveTrip(_ context.Context, _ string, tripID *string, p trip.Payload) (string, error) {
	f.calls = append(f.calls, "save_trip")
	f.tripIDs = append(f.tripIDs, tripID)
	f.payloads = append(f.payloads, p)
	if f.failTrip {
		return "", errDown
	}
	if tripID != nil {
		return *tripID, nil
	}
	return "trip-1", nil
}

func (f *fakeStore) SaveItems(_ context.Context, _ string, _ string, items []trip.Item) error {
	f.calls = append(f.calls, "save_items")
	f.items = append(f.items, items)
	if f.failItems {
		return errDown
	}
	return nil
}

func (f *fakeStore) FetchTrip(context.Context, string, string) ([]byte, error) { return nil, nil }
func (f *fakeStore) ListTrips(context.Context, string) ([]byte, error)         { return nil, nil }
