package wizard

import (
	"math"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/trip"
)

// Stale reports whether r no longer belongs to the session: it was issued
// under an older epoch, or nothing of its kind is in flight.
func (s State) Stale(r Result) bool {
	return r.ResultEpoch() != s.Epoch || !s.Loading || r.Kind() != s.Pending
}

// Apply folds a result into the state. A failed call sets the step's error
// message and leaves the draft untouched. The returned effect is the
// follow-up call, if any (an optimization after an overweight result).
func (s State) Apply(r Result) (State, Effect) {
	if s.Stale(r) {
		return s, nil
	}
	switch r := r.(type) {
	case SuggestionsResult:
		return s.applySuggestions(r), nil
	case WeightsResult:
		return s.applyWeights(r)
	case OptimizeResult:
		return s.applyOptimize(r), nil
	case PackingStepsResult:
		return s.applyPackingSteps(r), nil
	case LuggageResult:
		return s.applyLuggage(r), nil
	case SaveResult:
		return s.applySave(r), nil
	}
	return s, nil
}

func (s State) done() State {
	s.Loading = false
	s.Pending = KindNone
	s.staged = nil
	return s
}

func (s State) fail(msg string) State {
	s = s.done()
	s.Err = msg
	return s
}

func (s State) applySuggestions(r SuggestionsResult) State {
	if r.Err != nil {
		return s.fail(MsgSuggestionsFailed)
	}
	list := trip.ReplaceSuggestions(r.Suggestions)
	if len(trip.SelectedSuggestions(list)) > 0 || len(trip.SelectedSuggestions(s.Draft.Suggestions)) > 0 {
		s.Draft.Plan = nil
	}
	s.Draft.Suggestions = list
	s.Draft.SuggestionsRaw = r.Raw
	return s.done()
}

// applyWeights attaches the estimated weights. When the total is over the
// limit the result is staged and an optimization is requested; nothing is
// written to the draft until that call resolves.
func (s State) applyWeights(r WeightsResult) (State, Effect) {
	if r.Err != nil {
		return s.fail(MsgWeightsFailed), nil
	}
	items := trip.AttachWeights(s.Draft.Items, r.Grams)
	totalKg := trip.ToKilograms(r.TotalG)
	if !trip.NeedsOptimization(totalKg, s.Draft.LimitKg) {
		s.Draft.Items = items
		s.Draft.TotalWeightKg = totalKg
		s.Draft.Optimization = nil
		return s.done(), nil
	}
	s.staged = &weighed{items: items, totalKg: totalKg}
	s.Pending = KindOptimize
	return s, FetchOptimization{Epoch: s.Epoch, Request: backend.OptimizeRequest{
		Items:   items,
		LimitKg: s.Draft.LimitKg,
	}}
}

func (s State) applyOptimize(r OptimizeResult) State {
	if r.Err != nil || s.staged == nil {
		return s.fail(MsgWeightsFailed)
	}
	opt := r.Result
	s.Draft.Items = s.staged.items
	s.Draft.TotalWeightKg = s.staged.totalKg
	s.Draft.Optimization = &opt
	return s.done()
}

func (s State) applyPackingSteps(r PackingStepsResult) State {
	if r.Err != nil {
		return s.fail(MsgStrategyFailed)
	}
	plan := r.Plan
	if plan.Steps == nil {
		plan.Steps = []trip.PackingStep{}
	}
	s.Draft.Plan = &plan
	return s.done()
}

// applyLuggage copies looked-up dimensions into the manual fields. Complete
// dimensions decide the volume; otherwise the reported liters (or the
// current size) are kept.
func (s State) applyLuggage(r LuggageResult) State {
	if r.Err != nil {
		return s.fail(MsgLookupFailed)
	}
	s = s.done()
	if r.Dims == nil {
		return s
	}
	in := trip.InputFromDims(*r.Dims)
	liters := s.Draft.Suitcase.VolumeLiters
	if r.Liters > 0 {
		liters = int(math.Round(r.Liters))
	}
	return s.setSuitcase(in, liters)
}

func (s State) applySave(r SaveResult) State {
	if r.TripID != "" {
		s.TripID = r.TripID
	}
	if r.Err != nil {
		s.Phase = PhaseEditing
		return s.fail(MsgSaveFailed)
	}
	s.Phase = PhaseSaved
	return s.done()
}
