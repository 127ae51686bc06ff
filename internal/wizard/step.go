// Package wizard sequences the five trip-authoring steps.
//
// State is a value: every transition takes a State and returns the next one,
// plus at most one Effect describing the external call to make. The caller
// runs the effect (see Runner) and feeds the Result back through Apply.
// Effects and results carry the epoch of the step entry that issued them;
// a result from an older epoch is discarded.
package wizard

import "fmt"

// Step is a wizard page.
type Step int

const (
	StepDetails Step = iota + 1
	StepItems
	StepSuggestions
	StepWeight
	StepStrategy
)

// Steps lists the wizard pages in order.
var Steps = []Step{StepDetails, StepItems, StepSuggestions, StepWeight, StepStrategy}

var stepTitles = map[Step]string{
	StepDetails:     "Details",
	StepItems:       "Items",
	StepSuggestions: "AI Tips",
	StepWeight:      "Weight",
	StepStrategy:    "Strategy",
}

func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return fmt.Sprintf("Step %d", int(s))
}

func (s Step) String() string { return s.Title() }

// Phase tracks the save lifecycle around the steps.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSaving
	PhaseSaved
)

// User-facing messages.
const (
	MsgRequiredFields    = "Please fill in all required fields"
	MsgNoItems           = "Please add at least one item to your packing list"
	MsgSuggestionsFailed = "Failed to get AI suggestions. Please check your backend connection."
	MsgWeightsFailed     = "Failed to calculate weights. Please check your backend connection."
	MsgStrategyFailed    = "Failed to get packing strategy. Please check your backend connection."
	MsgSaveFailed        = "Failed to save trip. Please try again."
	MsgLookupFailed      = "Could not look up suitcase info."
)

// ValidationError is returned when a step's exit guard fails. No external
// call is made.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}
