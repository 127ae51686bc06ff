package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/packit/internal/trip"
)

func TestTripWrappedWithoutIdentity(t *testing.T) {
	c, err := Trip([]byte(`{"trip":{"startDate":"2025-01-01","endDate":"2025-01-05","totalWeightKg":18}}`), "t1")
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", c.StartDate)
	require.Equal(t, "2025-01-05", c.EndDate)
	require.Equal(t, 18.0, c.TotalWeightKg)
	require.Equal(t, 23.0, c.AirlineLimitKg)
	require.Equal(t, "t1", c.ID)
	require.Equal(t, "Economy", c.TravelClass)
	require.Equal(t, "Trip", c.Purpose)
	require.Equal(t, "completed", c.Status)
	require.Equal(t, "", c.Airline)
	require.Nil(t, c.SuitcaseSizeL)
	require.Nil(t, c.PackingPlan)
	require.Empty(t, c.AcceptedRecommendations)
	require.NotNil(t, c.AcceptedRecommendations)
	require.NotNil(t, c.PackingSteps)
	require.NotNil(t, c.Items)
}

func TestTripEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		dest string
		id   string
	}{
		{"data_trip", `{"ok":true,"data":{"trip":{"id":"abc","destination":"Tokyo"}}}`, "Tokyo", "abc"},
		{"trip", `{"trip":{"destination":"Lisbon"}}`, "Lisbon", "fallback"},
		{"bare_destination", `{"destination":"Oslo"}`, "Oslo", "fallback"},
		{"bare_id", `{"id":"z9"}`, "", "z9"},
		{"data_trip_wins", `{"data":{"trip":{"destination":"Rome"}},"trip":{"destination":"Paris"}}`, "Rome", "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Trip([]byte(tc.raw), "fallback")
			require.NoError(t, err)
			require.Equal(t, tc.dest, c.Destination)
			require.Equal(t, tc.id, c.ID)
		})
	}
}

func TestTripNotFound(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `"trip"`, `{}`, `{"ok":false,"error":"missing"}`, `{"trip":null}`} {
		_, err := Trip([]byte(raw), "t1")
		require.ErrorIs(t, err, ErrNotFound, raw)
	}
}

func TestFromRecordSnakeCase(t *testing.T) {
	raw := `{
		"id": "t7",
		"destination": "Reykjavik",
		"start_date": "2025-02-01",
		"end_date": "2025-02-03",
		"travel_class": "Business",
		"purpose": "Adventure",
		"status": "draft",
		"airline_limit": "32",
		"total_weight": 12.5,
		"suitcase_size_l": 60,
		"suitcase_dims": {"length_cm": 60, "width_cm": 40, "depth_cm": 25},
		"accepted_recommendations": ["Crampons", {"id": "ai:thermos", "text": "Thermos", "selected": true}],
		"packing_plan": {"suitcase_size_l": 60, "ordered_packing_list": ["Boots"], "steps": ["Boots at the bottom"]},
		"packing_steps": [{"title": "Roll clothes"}],
		"created_at": "2025-01-15T10:00:00Z"
	}`
	c, err := Trip([]byte(raw), "")
	require.NoError(t, err)
	require.Equal(t, "t7", c.ID)
	require.Equal(t, "2025-02-01", c.StartDate)
	require.Equal(t, "Business", c.TravelClass)
	require.Equal(t, "Adventure", c.Purpose)
	require.Equal(t, "draft", c.Status)
	require.Equal(t, 32.0, c.AirlineLimitKg)
	require.Equal(t, 12.5, c.TotalWeightKg)
	require.NotNil(t, c.SuitcaseSizeL)
	require.Equal(t, 60, *c.SuitcaseSizeL)
	require.Equal(t, &trip.Dims{LengthCm: 60, WidthCm: 40, DepthCm: 25}, c.SuitcaseDims)
	require.Len(t, c.AcceptedRecommendations, 2)
	require.Equal(t, "Crampons", c.AcceptedRecommendations[0].Text)
	require.True(t, c.AcceptedRecommendations[1].Selected)
	require.NotNil(t, c.PackingPlan)
	require.Equal(t, "Boots", c.PackingPlan.OrderedItems[0].Name)
	require.Equal(t, "Boots at the bottom", c.Steps()[0].Title)
	require.Equal(t, "Roll clothes", c.PackingSteps[0].Title)
	require.Equal(t, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), c.CreatedAt)
}

func TestCamelCaseWinsOverLegacy(t *testing.T) {
	c, err := Trip([]byte(`{"destination":"Nice","startDate":"2025-06-01","start_date":"1999-01-01","airlineLimitKg":0,"airline_limit":30}`), "")
	require.NoError(t, err)
	require.Equal(t, "2025-06-01", c.StartDate)
	require.Equal(t, 0.0, c.AirlineLimitKg)
}

func TestItemsFromSibling(t *testing.T) {
	raw := `{"data":{"trip":{"destination":"Tokyo"},"items":[{"name":"Camera","qty":2,"aiWeight":800}]}}`
	c, err := Trip([]byte(raw), "t1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, "Camera", c.Items[0].Name)
	require.Equal(t, 2, c.Items[0].Quantity)
	require.Equal(t, 800.0, c.Items[0].WeightGrams())

	c, err = Trip([]byte(`{"trip":{"destination":"Tokyo"},"items":["Hat"]}`), "t1")
	require.NoError(t, err)
	require.Equal(t, "Hat", c.Items[0].Name)

	c, err = Trip([]byte(`{"trip":{"destination":"Tokyo","items":["Scarf"]},"items":["Hat"]}`), "t1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, "Scarf", c.Items[0].Name)
}

func TestMalformedOptionalFields(t *testing.T) {
	raw := `{"destination":"Cairo","packingPlan":"soon","packingSteps":{"oops":1},"items":"none","suitcaseDims":{"lengthCm":10}}`
	c, err := Trip([]byte(raw), "")
	require.NoError(t, err)
	require.Nil(t, c.PackingPlan)
	require.Empty(t, c.PackingSteps)
	require.Empty(t, c.Items)
	require.Nil(t, c.SuitcaseDims)
}

func TestList(t *testing.T) {
	cases := map[string]string{
		"bare":       `[{"id":"a","destination":"Tokyo"},{"id":"b","destination":"Lima"}]`,
		"trips":      `{"trips":[{"id":"a","destination":"Tokyo"},{"id":"b","destination":"Lima"}]}`,
		"data_trips": `{"data":{"trips":[{"id":"a","destination":"Tokyo"},{"trip":{"id":"b","destination":"Lima"}}]}}`,
		"data_array": `{"data":[{"id":"a","destination":"Tokyo"},{"id":"b","destination":"Lima"},{"note":"skipped"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			trips := List([]byte(raw))
			require.Len(t, trips, 2)
			require.Equal(t, "a", trips[0].ID)
			require.Equal(t, "Lima", trips[1].Destination)
		})
	}
	require.Empty(t, List([]byte(`oops`)))
	require.NotNil(t, List(nil))
}
