package wizard

import (
	"encoding/json"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/trip"
)

// Kind identifies an external call.
type Kind int

const (
	KindNone Kind = iota
	KindSuggestions
	KindWeights
	KindOptimize
	KindPackingSteps
	KindLuggage
	KindSave
)

var kindNames = map[Kind]string{
	KindNone:         "none",
	KindSuggestions:  "suggestions",
	KindWeights:      "weights",
	KindOptimize:     "optimize",
	KindPackingSteps: "packing_steps",
	KindLuggage:      "luggage",
	KindSave:         "save",
}

func (k Kind) String() string { return kindNames[k] }

// computing reports whether the call produces weight, optimization or plan.
func (k Kind) computing() bool {
	return k == KindWeights || k == KindOptimize || k == KindPackingSteps
}

// Effect is an external call requested by a transition.
type Effect interface {
	Kind() Kind
	EffectEpoch() uint64
}

type FetchSuggestions struct {
	Epoch   uint64
	Request backend.SuggestRequest
}

type FetchWeights struct {
	Epoch   uint64
	Request backend.WeightRequest
}

type FetchOptimization struct {
	Epoch   uint64
	Request backend.OptimizeRequest
}

type FetchPackingSteps struct {
	Epoch   uint64
	Request backend.StepsRequest
}

type LookupLuggage struct {
	Epoch   uint64
	Request backend.LuggageRequest
}

// SaveTrip creates (or, when TripID is set, overwrites) the trip record and
// then bulk-saves Items against it.
type SaveTrip struct {
	Epoch   uint64
	TripID  *string
	Payload trip.Payload
	Items   []trip.Item
}

func (FetchSuggestions) Kind() Kind  { return KindSuggestions }
func (FetchWeights) Kind() Kind      { return KindWeights }
func (FetchOptimization) Kind() Kind { return KindOptimize }
func (FetchPackingSteps) Kind() Kind { return KindPackingSteps }
func (LookupLuggage) Kind() Kind     { return KindLuggage }
func (SaveTrip) Kind() Kind          { return KindSave }

func (e FetchSuggestions) EffectEpoch() uint64  { return e.Epoch }
func (e FetchWeights) EffectEpoch() uint64      { return e.Epoch }
func (e FetchOptimization) EffectEpoch() uint64 { return e.Epoch }
func (e FetchPackingSteps) EffectEpoch() uint64 { return e.Epoch }
func (e LookupLuggage) EffectEpoch() uint64     { return e.Epoch }
func (e SaveTrip) EffectEpoch() uint64          { return e.Epoch }

// Result is the outcome of an Effect. Err is non-nil on transport failure.
type Result interface {
	Kind() Kind
	ResultEpoch() uint64
	Failure() error
}

type SuggestionsResult struct {
	Epoch       uint64
	Suggestions []trip.Suggestion
	Raw         json.RawMessage
	Err         error
}

type WeightsResult struct {
	Epoch  uint64
	Grams  []float64
	TotalG float64
	Err    error
}

type OptimizeResult struct {
	Epoch  uint64
	Result trip.OptimizationResult
	Err    error
}

type PackingStepsResult struct {
	Epoch uint64
	Plan  trip.PackingPlan
	Err   error
}

type LuggageResult struct {
	Epoch  uint64
	Dims   *trip.Dims
	Liters float64
	Err    error
}

// SaveResult carries the trip id whenever the trip record was written, even
// if saving the items then failed.
type SaveResult struct {
	Epoch  uint64
	TripID string
	Err    error
}

func (SuggestionsResult) Kind() Kind  { return KindSuggestions }
func (WeightsResult) Kind() Kind      { return KindWeights }
func (OptimizeResult) Kind() Kind     { return KindOptimize }
func (PackingStepsResult) Kind() Kind { return KindPackingSteps }
func (LuggageResult) Kind() Kind      { return KindLuggage }
func (SaveResult) Kind() Kind         { return KindSave }

func (r SuggestionsResult) ResultEpoch() uint64  { return r.Epoch }
func (r WeightsResult) ResultEpoch() uint64      { return r.Epoch }
func (r OptimizeResult) ResultEpoch() uint64     { return r.Epoch }
func (r PackingStepsResult) ResultEpoch() uint64 { return r.Epoch }
func (r LuggageResult) ResultEpoch() uint64      { return r.Epoch }
func (r SaveResult) ResultEpoch() uint64         { return r.Epoch }

func (r SuggestionsResult) Failure() error  { return r.Err }
func (r WeightsResult) Failure() error      { return r.Err }
func (r OptimizeResult) Failure() error     { return r.Err }
func (r PackingStepsResult) Failure() error { return r.Err }
func (r LuggageResult) Failure() error      { return r.Err }
func (r SaveResult) Failure() error         { return r.Err }
