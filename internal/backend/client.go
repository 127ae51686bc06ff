// Package backend talks to the packing service: the AI endpoints
// (suggestions, weights, optimization, packing steps, luggage lookup) and
// the trip persistence surface.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jask/packit/internal/trip"
)

const (
	pathSuggest  = "/gemini/suggest"
	pathWeight   = "/gemini/weight"
	pathOptimize = "/gemini/optimize"
	pathSteps    = "/gemini/steps"
	pathLuggage  = "/luggage/lookup"
	pathSaveTrip = "/trips/save"
	pathItems    = "/trips/items"
	pathGetTrip  = "/trips/get"
	pathTrips    = "/trips/list"
)

type Client struct {
	http    *resty.Client
	apiKey  string
	timeout time.Duration
	log     zerolog.Logger
}

// New returns a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	c := &Client{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if c.timeout > 0 {
		c.http.SetTimeout(c.timeout)
	}
	if c.apiKey != "" {
		c.http.SetAuthToken(c.apiKey)
	}
	return c, nil
}

// post sends body to path and returns the raw response body. Any transport
// failure or non-2xx status is returned as *Error.
func (c *Client) post(ctx context.Context, op, path string, body any) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		c.log.Warn().Err(err).Str("op", op).Str("path", path).Msg("backend request failed")
		return nil, &Error{Op: op, Err: err}
	}
	c.log.Debug().
		Str("method", "POST").
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("took", time.Since(start)).
		Msg("backend call")
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		requestsTotal.WithLabelValues(op, "status").Inc()
		e := statusError(op, resp.StatusCode(), resp.String())
		c.log.Warn().Err(e).Str("op", op).Msg("backend returned failure")
		return nil, e
	}
	requestsTotal.WithLabelValues(op, "ok").Inc()
	return resp.Body(), nil
}

// call posts body and decodes the response into out.
func (c *Client) call(ctx context.Context, op, path string, body, out any) error {
	raw, err := c.post(ctx, op, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Body: string(raw), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) Suggest(ctx context.Context, req SuggestRequest) (SuggestResponse, error) {
	var out SuggestResponse
	err := c.call(ctx, "suggest", pathSuggest, req, &out)
	return out, err
}

func (c *Client) Weigh(ctx context.Context, req WeightRequest) (WeightResponse, error) {
	var out WeightResponse
	err := c.call(ctx, "weight", pathWeight, req, &out)
	return out, err
}

func (c *Client) Optimize(ctx context.Context, req OptimizeRequest) (trip.OptimizationResult, error) {
	var out trip.OptimizationResult
	err := c.call(ctx, "optimize", pathOptimize, req, &out)
	return out, err
}

func (c *Client) PackingSteps(ctx context.Context, req StepsRequest) (trip.PackingPlan, error) {
	var out trip.PackingPlan
	err := c.call(ctx, "steps", pathSteps, req, &out)
	return out, err
}

func (c *Client) LookupLuggage(ctx context.Context, req LuggageRequest) (LuggageResponse, error) {
	var out LuggageResponse
	err := c.call(ctx, "luggage", pathLuggage, req, &out)
	return out, err
}

// SaveTrip creates (tripID nil) or overwrites a trip record and returns its id.
func (c *Client) SaveTrip(ctx context.Context, uid string, tripID *string, p trip.Payload) (string, error) {
	var out saveTripResponse
	if err := c.call(ctx, "save_trip", pathSaveTrip, saveTripRequest{UID: uid, TripID: tripID, Payload: p}, &out); err != nil {
		return "", err
	}
	if out.TripID == "" {
		return "", ErrNoTripID
	}
	return out.TripID, nil
}

// SaveItems bulk-saves the items of a trip.
func (c *Client) SaveItems(ctx context.Context, uid, tripID string, items []trip.Item) error {
	if items == nil {
		items = []trip.Item{}
	}
	return c.call(ctx, "save_items", pathItems, saveItemsRequest{UID: uid, TripID: tripID, Items: items}, nil)
}

// FetchTrip returns the raw trip record. The envelope shape varies between
// service versions and is resolved by the normalizer.
func (c *Client) FetchTrip(ctx context.Context, uid, tripID string) ([]byte, error) {
	return c.post(ctx, "fetch_trip", pathGetTrip, fetchTripRequest{UID: uid, TripID: tripID})
}

// ListTrips returns the raw list of the user's trip records.
func (c *Client) ListTrips(ctx context.Context, uid string) ([]byte, error) {
	return c.post(ctx, "list_trips", pathTrips, listTripsRequest{UID: uid})
}
