package tui

import (
	"fmt"
	"strings"

	"github.com/jask/packit/internal/trip"
)

// RenderSummary renders a saved trip. It is shared by the summary screen and
// the show command.
func RenderSummary(c trip.Canonical, width int) string {
	var b strings.Builder
	dest := c.Destination
	if dest == "" {
		dest = "Untitled trip"
	}
	b.WriteString(titleStyle.Render(dest) + "\n")

	dates := c.StartDate + " → " + c.EndDate
	if days, ok := c.DurationDays(); ok {
		dates += fmt.Sprintf("  (%d %s)", days, plural(days, "day"))
	}
	b.WriteString(rowLabel.Render("Dates") + dates + "\n")
	if c.Airline != "" {
		b.WriteString(rowLabel.Render("Airline") + c.Airline + "\n")
	}
	b.WriteString(rowLabel.Render("Class") + c.TravelClass + "\n")
	b.WriteString(rowLabel.Render("Purpose") + c.Purpose + "\n")
	if c.SuitcaseSizeL != nil {
		b.WriteString(rowLabel.Render("Suitcase") + suitcaseLabel(trip.SuitcaseSpec{VolumeLiters: *c.SuitcaseSizeL, Dims: c.SuitcaseDims}) + "\n")
	}

	ws := c.Weight()
	b.WriteString("\n" + weightBar(ws) + fmt.Sprintf("  %.1f / %.1f kg\n", ws.TotalKg, ws.LimitKg))
	b.WriteString(captionStyle(ws).Render(ws.Caption()) + "\n")

	if len(c.AcceptedRecommendations) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Recommendations") + "\n")
		for _, s := range c.AcceptedRecommendations {
			b.WriteString("  • " + truncate(s.Text, width-4) + "\n")
		}
	}

	if ordered := c.OrderedList(); len(ordered) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Packing order") + "\n")
		for i, it := range ordered {
			b.WriteString(truncate(fmt.Sprintf("%3d. %s", i+1, itemLine(it)), width) + "\n")
		}
	} else if len(c.Items) > 0 {
		b.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("Items (%d)", len(c.Items))) + "\n")
		for _, it := range c.Items {
			b.WriteString("  " + truncate(itemLine(it), width-2) + "\n")
		}
	}
	b.WriteString(renderSteps(c.Steps(), width))
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
