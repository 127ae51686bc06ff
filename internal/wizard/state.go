package wizard

import (
	"strings"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/trip"
)

// State is one wizard session. The zero value is not usable; start from New.
type State struct {
	Step    Step
	Phase   Phase
	Draft   trip.Draft
	Loading bool
	Pending Kind // the call in flight while Loading
	Epoch   uint64
	Err     string
	// TripID is set once a trip record exists, so a failed save that wrote
	// the trip but not its items overwrites the same record on retry.
	TripID string

	staged *weighed
}

// weighed holds a weight result until the optimization it triggered
// resolves.
type weighed struct {
	items   []trip.Item
	totalKg float64
}

// New starts a session on the details step.
func New(d trip.Draft) State {
	return State{Step: StepDetails, Phase: PhaseEditing, Draft: d}
}

// onEnter holds the auto-fetch action of each step. An action returns nil
// when the step's data is already present.
var onEnter = map[Step]func(State) (State, Effect){
	StepSuggestions: enterSuggestions,
	StepWeight:      enterWeight,
	StepStrategy:    enterStrategy,
}

// leaveGuards validate the current step before advancing.
var leaveGuards = map[Step]func(trip.Draft) string{
	StepDetails: func(d trip.Draft) string {
		if blank(d.Destination) || blank(d.StartDate) || blank(d.EndDate) {
			return MsgRequiredFields
		}
		return ""
	},
	StepItems: func(d trip.Draft) string {
		if len(d.Items) == 0 {
			return MsgNoItems
		}
		return ""
	},
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Next validates the current step and advances. On the last step it starts
// the save instead.
func (s State) Next() (State, Effect, error) {
	if s.Phase != PhaseEditing {
		return s, nil, nil
	}
	s.Err = ""
	if guard, ok := leaveGuards[s.Step]; ok {
		if msg := guard(s.Draft); msg != "" {
			s.Err = msg
			return s, nil, &ValidationError{Step: s.Step, Message: msg}
		}
	}
	if s.Step == StepStrategy {
		next, eff := s.save()
		return next, eff, nil
	}
	next, eff := s.enter(s.Step + 1)
	return next, eff, nil
}

// Back returns to the previous step. It is a no-op on the first step and
// while saving.
func (s State) Back() (State, Effect) {
	if s.Phase != PhaseEditing || s.Step == StepDetails {
		return s, nil
	}
	s.Err = ""
	return s.enter(s.Step - 1)
}

// Retry re-enters the current step, re-running its fetch if its data is
// still missing.
func (s State) Retry() (State, Effect) {
	if s.Phase != PhaseEditing {
		return s, nil
	}
	s.Err = ""
	return s.enter(s.Step)
}

// enter starts a new epoch on step and runs its on-enter action. Anything
// still in flight belongs to the old epoch and is abandoned.
func (s State) enter(step Step) (State, Effect) {
	s.Step = step
	s = s.abandon()
	if action, ok := onEnter[step]; ok && !s.Loading {
		return action(s)
	}
	return s, nil
}

// abandon bumps the epoch so outstanding results are discarded.
func (s State) abandon() State {
	s.Epoch++
	s.Loading = false
	s.Pending = KindNone
	s.staged = nil
	return s
}

func (s State) begin(k Kind) State {
	s.Loading = true
	s.Pending = k
	s.Err = ""
	return s
}

func enterSuggestions(s State) (State, Effect) {
	if len(s.Draft.Suggestions) > 0 {
		return s, nil
	}
	d := s.Draft
	s = s.begin(KindSuggestions)
	return s, FetchSuggestions{Epoch: s.Epoch, Request: backend.SuggestRequest{
		Destination: d.Destination,
		Dates:       backend.Dates{Start: d.StartDate, End: d.EndDate},
		Airline:     d.Airline,
		TravelClass: d.TravelClass,
		Purpose:     d.Purpose,
		Items:       itemsOrEmpty(d.Items),
	}}
}

func enterWeight(s State) (State, Effect) {
	if s.Draft.TotalWeightKg != 0 {
		return s, nil
	}
	s = s.begin(KindWeights)
	return s, FetchWeights{Epoch: s.Epoch, Request: backend.WeightRequest{Items: itemsOrEmpty(s.Draft.Items)}}
}

func enterStrategy(s State) (State, Effect) {
	if s.Draft.Plan != nil {
		return s, nil
	}
	d := s.Draft
	size := d.Suitcase.VolumeLiters
	if size <= 0 {
		size = trip.DefaultSuitcaseL
	}
	s = s.begin(KindPackingSteps)
	return s, FetchPackingSteps{Epoch: s.Epoch, Request: backend.StepsRequest{
		Items:                   trip.PackItems(d.Items),
		RecommendationsSelected: trip.SelectedSuggestions(d.Suggestions),
		SuitcaseSizeL:           size,
		SuitcaseDims:            d.Suitcase.Dims,
		LuggageType:             trip.DefaultLuggageType,
	}}
}

// save abandons any fetch still running and requests persistence of the
// draft.
func (s State) save() (State, Effect) {
	s = s.abandon().begin(KindSave)
	s.Phase = PhaseSaving
	var id *string
	if s.TripID != "" {
		tid := s.TripID
		id = &tid
	}
	return s, SaveTrip{
		Epoch:   s.Epoch,
		TripID:  id,
		Payload: trip.NewPayload(s.Draft),
		Items:   itemsOrEmpty(s.Draft.Items),
	}
}

func itemsOrEmpty(items []trip.Item) []trip.Item {
	if items == nil {
		return []trip.Item{}
	}
	return items
}

// Busy reports whether a call is in flight.
func (s State) Busy() bool { return s.Loading }

// Weight classifies the draft's current total.
func (s State) Weight() trip.WeightStatus {
	return trip.ClassifyWeight(s.Draft.TotalWeightKg, s.Draft.LimitKg)
}
