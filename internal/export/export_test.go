package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"

	"github.com/jask/packit/internal/trip"
)

func sampleTrip() trip.Canonical {
	size := 60
	w := 1200.0
	return trip.Canonical{
		ID:             "t1",
		Destination:    "Tokyo",
		StartDate:      "2025-03-01",
		EndDate:        "2025-03-10",
		Airline:        "ANA",
		TravelClass:    "Economy",
		Purpose:        "Vacation",
		AirlineLimitKg: 23,
		TotalWeightKg:  24.3,
		SuitcaseSizeL:  &size,
		SuitcaseDims:   &trip.Dims{LengthCm: 60, WidthCm: 40, DepthCm: 25},
		AcceptedRecommendations: []trip.Suggestion{
			{ID: "s1", Text: "Umbrella", Selected: true},
		},
		PackingPlan: &trip.PackingPlan{
			OrderedItems: []trip.Item{{Name: "Boots", Quantity: 1, Category: trip.CategoryShoes, Weight: &w}},
			Steps:        []trip.PackingStep{{Title: "Boots first", Items: []string{"Boots"}}},
		},
		Items: []trip.Item{trip.NewItem("Socks", 4, trip.CategoryClothing)},
	}
}

func TestFromTrip(t *testing.T) {
	cl := FromTrip(sampleTrip())

	require.Equal(t, 9, cl.Trip.DurationDays)
	require.Equal(t, 60, cl.Trip.SuitcaseL)
	require.Equal(t, "60 × 40 × 25 cm", cl.Trip.SuitcaseDims)
	require.Equal(t, "over", cl.Weight.Status)
	require.Equal(t, "Over limit by 1.3 kg", cl.Weight.Caption)
	require.Equal(t, []string{"Umbrella"}, cl.Recommendations)
	require.Equal(t, []Entry{{Name: "Boots", Quantity: 1, Category: "Shoes", WeightG: 1200}}, cl.Items)
	require.Len(t, cl.Steps, 1)
}

func TestFromTripFallsBackToItems(t *testing.T) {
	c := sampleTrip()
	c.PackingPlan = nil
	c.StartDate = "soon"

	cl := FromTrip(c)
	require.Zero(t, cl.Trip.DurationDays)
	require.Equal(t, "Socks", cl.Items[0].Name)
	require.Empty(t, cl.Steps)
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTOML, sampleTrip()))

	var got Checklist
	_, err := toml.Decode(buf.String(), &got)
	require.NoError(t, err)
	require.Equal(t, "Tokyo", got.Trip.Destination)
	require.Equal(t, "Boots", got.Items[0].Name)
	require.Equal(t, []string{"Boots"}, got.Steps[0].Items)
}

func TestWriteFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tokyo.json")
	require.NoError(t, WriteFile(path, sampleTrip()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Contains(t, got, "items")
	require.Equal(t, "t1", got["trip"].(map[string]any)["id"])
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b.TOML")
	require.NoError(t, err)
	require.Equal(t, FormatTOML, f)

	_, err = FormatFromPath("list.csv")
	require.Error(t, err)
}
