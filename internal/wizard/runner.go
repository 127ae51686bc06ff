package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/jask/packit/internal/backend"
	"github.com/jask/packit/internal/store"
	"github.com/jask/packit/internal/trip"
)

var (
	effectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packit_wizard",
			Name:      "effects_total",
			Help:      "Wizard effects executed by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	staleResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packit_wizard",
			Name:      "stale_results_total",
			Help:      "Results discarded because the session moved on.",
		},
		[]string{"kind"},
	)
)

// Backend is the AI side of the packing service.
type Backend interface {
	Suggest(ctx context.Context, req backend.SuggestRequest) (backend.SuggestResponse, error)
	Weigh(ctx context.Context, req backend.WeightRequest) (backend.WeightResponse, error)
	Optimize(ctx context.Context, req backend.OptimizeRequest) (trip.OptimizationResult, error)
	PackingSteps(ctx context.Context, req backend.StepsRequest) (trip.PackingPlan, error)
	LookupLuggage(ctx context.Context, req backend.LuggageRequest) (backend.LuggageResponse, error)
}

// Runner executes effects against the collaborators. Failures are logged
// here and reported in the Result; they never escape as errors.
type Runner struct {
	Backend Backend
	Store   store.Store
	UID     string
	Log     zerolog.Logger
	Now     func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run performs e and returns its result.
func (r *Runner) Run(ctx context.Context, e Effect) Result {
	start := time.Now()
	res := r.run(ctx, e)
	outcome := "ok"
	ev := r.Log.Debug()
	if err := res.Failure(); err != nil {
		outcome = "error"
		ev = r.Log.Warn().Err(err)
	}
	effectsTotal.WithLabelValues(e.Kind().String(), outcome).Inc()
	ev.Str("effect", e.Kind().String()).
		Uint64("epoch", e.EffectEpoch()).
		Dur("took", time.Since(start)).
		Msg("wizard effect")
	return res
}

func (r *Runner) run(ctx context.Context, e Effect) Result {
	switch e := e.(type) {
	case FetchSuggestions:
		resp, err := r.Backend.Suggest(ctx, e.Request)
		return SuggestionsResult{Epoch: e.Epoch, Suggestions: resp.Suggestions, Raw: resp.Raw, Err: err}
	case FetchWeights:
		resp, err := r.Backend.Weigh(ctx, e.Request)
		return WeightsResult{Epoch: e.Epoch, Grams: resp.Grams, TotalG: resp.TotalG, Err: err}
	case FetchOptimization:
		resp, err := r.Backend.Optimize(ctx, e.Request)
		return OptimizeResult{Epoch: e.Epoch, Result: resp, Err: err}
	case FetchPackingSteps:
		resp, err := r.Backend.PackingSteps(ctx, e.Request)
		return PackingStepsResult{Epoch: e.Epoch, Plan: resp, Err: err}
	case LookupLuggage:
		resp, err := r.Backend.LookupLuggage(ctx, e.Request)
		return LuggageResult{Epoch: e.Epoch, Dims: resp.Dims, Liters: resp.Liters, Err: err}
	case SaveTrip:
		return r.save(ctx, e)
	}
	return SaveResult{Epoch: e.EffectEpoch(), Err: fmt.Errorf("wizard: unknown effect %T", e)}
}

// save writes the trip record, then its items.
func (r *Runner) save(ctx context.Context, e SaveTrip) Result {
	payload := e.Payload.Stamp(r.now())
	id, err := r.Store.SaveTrip(ctx, r.UID, e.TripID, payload)
	if err != nil {
		return SaveResult{Epoch: e.Epoch, Err: fmt.Errorf("save trip: %w", err)}
	}
	if err := r.Store.SaveItems(ctx, r.UID, id, e.Items); err != nil {
		return SaveResult{Epoch: e.Epoch, TripID: id, Err: fmt.Errorf("save items: %w", err)}
	}
	return SaveResult{Epoch: e.Epoch, TripID: id}
}

// Observe applies res to s, counting results that arrive too late.
func Observe(s State, res Result) (State, Effect) {
	if s.Stale(res) {
		staleResults.WithLabelValues(res.Kind().String()).Inc()
		return s, nil
	}
	return s.Apply(res)
}

// Drive runs e and every follow-up effect synchronously and returns the
// settled state.
func Drive(ctx context.Context, r *Runner, s State, e Effect) State {
	for e != nil {
		s, e = Observe(s, r.Run(ctx, e))
	}
	return s
}
