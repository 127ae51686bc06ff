package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/jask/packit/internal/trip"
)

// tripItem adapts a trip to the list component.
type tripItem struct{ trip trip.Canonical }

func (t tripItem) Title() string {
	if t.trip.Destination == "" {
		return "Untitled trip"
	}
	return t.trip.Destination
}

func (t tripItem) Description() string {
	return TripLine(t.trip)
}

func (t tripItem) FilterValue() string { return t.trip.Destination + " " + t.trip.Airline }

// TripLine is the one-line summary used in trip listings: airline, duration
// and an overweight flag.
func TripLine(c trip.Canonical) string {
	var parts []string
	if c.Airline != "" {
		parts = append(parts, c.Airline)
	}
	if days, ok := c.DurationDays(); ok {
		parts = append(parts, fmt.Sprintf("%d %s", days, plural(days, "day")))
	} else if c.StartDate != "" {
		parts = append(parts, c.StartDate)
	}
	if c.Weight().OverLimit {
		parts = append(parts, "overweight")
	}
	if len(parts) == 0 {
		return c.TravelClass
	}
	return strings.Join(parts, " · ")
}

func newTripList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 64, 16)
	l.Title = "Your trips"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

func tripItems(trips []trip.Canonical) []list.Item {
	items := make([]list.Item, 0, len(trips))
	for _, c := range trips {
		items = append(items, tripItem{trip: c})
	}
	return items
}
