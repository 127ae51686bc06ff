package wizard

import (
	"slices"
	"strings"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/trip"
)

// Edits are ignored outside PhaseEditing.

// invalidate clears the weight, optimization and plan so the dependent
// steps fetch them again. A computing call still in flight would describe
// the old inputs, so it is abandoned.
func (s State) invalidate() State {
	s.Draft.TotalWeightKg = 0
	s.Draft.Optimization = nil
	s.Draft.Plan = nil
	if s.Loading && s.Pending.computing() {
		s = s.abandon()
	}
	return s
}

func (s State) invalidatePlan() State {
	s.Draft.Plan = nil
	if s.Loading && s.Pending == KindPackingSteps {
		s = s.abandon()
	}
	return s
}

// SetDetails replaces the trip facts. A new baggage limit invalidates the
// weight results.
func (s State) SetDetails(d trip.Details) State {
	if s.Phase != PhaseEditing {
		return s
	}
	limitChanged := d.LimitKg != s.Draft.LimitKg
	s.Draft.Details = d
	if limitChanged {
		s = s.invalidate()
	}
	return s
}

// AddItem appends it. Items without a name are rejected.
func (s State) AddItem(it trip.Item) (State, bool) {
	if s.Phase != PhaseEditing {
		return s, false
	}
	it = trip.NewItem(it.Name, it.Quantity, it.Category)
	if it.Name == "" {
		return s, false
	}
	s.Draft.Items = append(slices.Clone(s.Draft.Items), it)
	return s.invalidate(), true
}

func (s State) RemoveItem(i int) State {
	if s.Phase != PhaseEditing || i < 0 || i >= len(s.Draft.Items) {
		return s
	}
	s.Draft.Items = slices.Delete(slices.Clone(s.Draft.Items), i, i+1)
	return s.invalidate()
}

func (s State) ToggleSuggestion(id string) State {
	if s.Phase != PhaseEditing {
		return s
	}
	list, ok := trip.ToggleSuggestion(s.Draft.Suggestions, id)
	if !ok {
		return s
	}
	s.Draft.Suggestions = list
	return s.invalidate()
}

// AddCustomSuggestion inserts a selected user suggestion. Only the plan
// depends on it.
func (s State) AddCustomSuggestion(text string) State {
	if s.Phase != PhaseEditing {
		return s
	}
	list, ok := trip.AddCustomSuggestion(s.Draft.Suggestions, text)
	if !ok {
		return s
	}
	s.Draft.Suggestions = list
	return s.invalidatePlan()
}

// QuickAddSuggestion adds the suggestion as an item; the suggestion stays.
func (s State) QuickAddSuggestion(id string) (State, bool) {
	sug, ok := trip.FindSuggestion(s.Draft.Suggestions, id)
	if !ok {
		return s, false
	}
	return s.AddItem(sug.AsItem())
}

// SetSuitcaseSize picks a catalog size and clears manual dimensions.
func (s State) SetSuitcaseSize(liters int) State {
	if s.Phase != PhaseEditing || liters <= 0 {
		return s
	}
	return s.setSuitcase(trip.DimsInput{}, liters)
}

// SetDimsInput updates the manual dimension fields. Once all three parse,
// the volume is derived from them.
func (s State) SetDimsInput(in trip.DimsInput) State {
	if s.Phase != PhaseEditing {
		return s
	}
	return s.setSuitcase(in, s.Draft.Suitcase.VolumeLiters)
}

func (s State) setSuitcase(in trip.DimsInput, liters int) State {
	next := trip.SuitcaseSpec{VolumeLiters: liters, Dims: in.Dims()}
	if d := next.Dims; d != nil {
		next.VolumeLiters, _ = trip.LitersFromDims(d.LengthCm, d.WidthCm, d.DepthCm)
	}
	changed := !sameSuitcase(next, s.Draft.Suitcase)
	s.Draft.DimsInput = in
	s.Draft.Suitcase = next
	if changed {
		s = s.invalidate()
	}
	return s
}

func sameSuitcase(a, b trip.SuitcaseSpec) bool {
	if a.VolumeLiters != b.VolumeLiters || (a.Dims == nil) != (b.Dims == nil) {
		return false
	}
	return a.Dims == nil || *a.Dims == *b.Dims
}

// LookupLuggage asks the backend for the dimensions of a named suitcase.
func (s State) LookupLuggage(query string) (State, Effect) {
	query = strings.TrimSpace(query)
	if s.Phase != PhaseEditing || s.Loading || query == "" {
		return s, nil
	}
	s = s.begin(KindLuggage)
	return s, LookupLuggage{Epoch: s.Epoch, Request: backend.LuggageRequest{Query: query}}
}
