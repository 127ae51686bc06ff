// Package testdata seeds a store with sample trips for demos and manual
// testing.
package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/packit/internal/store"
	"github.com/jask/packit/internal/trip"
)

var destinations = []struct {
	City    string
	Airline string
}{
	{"Tokyo", "ANA"},
	{"Lisbon", "TAP Air Portugal"},
	{"Reykjavik", "Icelandair"},
	{"Cape Town", "South African Airways"},
	{"Vancouver", "Air Canada"},
	{"Bangkok", "Thai Airways"},
}

var sampleItems = []struct {
	Name     string
	Category trip.Category
	Grams    float64
}{
	{"T-shirt", trip.CategoryClothing, 180},
	{"Jeans", trip.CategoryClothing, 700},
	{"Rain jacket", trip.CategoryClothing, 450},
	{"Sneakers", trip.CategoryShoes, 900},
	{"Toothbrush", trip.CategoryToiletries, 20},
	{"Sunscreen", trip.CategoryToiletries, 200},
	{"Phone charger", trip.CategoryElectronics, 120},
	{"Laptop", trip.CategoryElectronics, 1800},
	{"Passport", trip.CategoryDocuments, 40},
	{"Painkillers", trip.CategoryMedications, 30},
	{"Sunglasses", trip.CategoryAccessories, 60},
}

var sampleTips = []string{"Umbrella", "Power adapter", "Reusable water bottle", "Travel pillow"}

// Seed saves n sample trips for uid, starting from now and going back a week
// per trip. rng decides items and quantities.
func Seed(ctx context.Context, s store.Store, uid string, n int, rng *rand.Rand, now time.Time) ([]string, error) {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dest := destinations[i%len(destinations)]
		start := now.AddDate(0, 0, 14+rng.Intn(60))
		d := trip.NewDraft()
		d.Destination = dest.City
		d.Airline = dest.Airline
		d.StartDate = start.Format("2006-01-02")
		d.EndDate = start.AddDate(0, 0, 3+rng.Intn(12)).Format("2006-01-02")
		d.TravelClass = trip.TravelClasses[rng.Intn(len(trip.TravelClasses))]
		d.Purpose = trip.Purposes[rng.Intn(len(trip.Purposes))]
		d.Suitcase = trip.SuitcaseSpec{VolumeLiters: trip.SuitcaseSizes[rng.Intn(len(trip.SuitcaseSizes))].Liters}

		var grams float64
		for _, si := range rng.Perm(len(sampleItems))[:4+rng.Intn(6)] {
			it := trip.NewItem(sampleItems[si].Name, 1+rng.Intn(3), sampleItems[si].Category)
			w := sampleItems[si].Grams * float64(it.Quantity)
			it.Weight = &w
			grams += w
			d.Items = append(d.Items, it)
		}
		d.TotalWeightKg = trip.ToKilograms(grams)
		for j, tip := range sampleTips {
			d.Suggestions = append(d.Suggestions, trip.Suggestion{
				ID:       fmt.Sprintf("ai:%d", j),
				Text:     tip,
				Selected: rng.Intn(2) == 0,
			})
		}
		d.Plan = &trip.PackingPlan{
			SuitcaseSizeL: d.Suitcase.VolumeLiters,
			OrderedItems:  d.Items,
			Steps: []trip.PackingStep{
				{Title: "Shoes and heavy items at the bottom"},
				{Title: "Roll clothes to fill the gaps"},
				{Title: "Documents and chargers on top"},
			},
		}

		p := trip.NewPayload(d).Stamp(now.Add(-time.Duration(i) * 7 * 24 * time.Hour))
		id, err := s.SaveTrip(ctx, uid, nil, p)
		if err != nil {
			return ids, fmt.Errorf("seed trip %d: %w", i, err)
		}
		if err := s.SaveItems(ctx, uid, id, d.Items); err != nil {
			return ids, fmt.Errorf("seed items for %s: %w", id, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
