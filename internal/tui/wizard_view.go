package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/packit/internal/export"
	"github.com/jask/packit/internal/trip"
	"github.com/jask/packit/internal/wizard"
)

var rowLabel = labelStyle.Width(14)

func (m *wizardModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pack-It · New trip") + "\n")
	b.WriteString(m.progress() + "\n\n")

	switch m.state.Step {
	case wizard.StepDetails:
		b.WriteString(m.viewDetails())
	case wizard.StepItems:
		b.WriteString(m.viewItems())
	case wizard.StepSuggestions:
		b.WriteString(m.viewSuggestions())
	case wizard.StepWeight:
		b.WriteString(m.viewWeight())
	case wizard.StepStrategy:
		b.WriteString(m.viewStrategy())
	}

	b.WriteString("\n")
	switch {
	case m.state.Phase == wizard.PhaseSaving:
		b.WriteString(infoStyle.Render("Saving trip…") + "\n")
	case m.state.Busy():
		b.WriteString(infoStyle.Render(loadingText(m.state.Pending)) + "\n")
	case m.state.Err != "":
		b.WriteString(errorStyle.Render(m.state.Err) + "\n")
	case m.status != "":
		b.WriteString(successStyle.Render(m.status) + "\n")
	}
	next := m.keys.Next
	if m.state.Step == wizard.StepStrategy {
		next.SetHelp("ctrl+n", "finish")
	}
	b.WriteString(helpLine(next, m.keys.Back, m.keys.Retry, m.keys.NextField, m.keys.Cancel))
	return b.String()
}

func loadingText(k wizard.Kind) string {
	switch k {
	case wizard.KindSuggestions:
		return "Getting AI suggestions…"
	case wizard.KindWeights:
		return "Calculating weights…"
	case wizard.KindOptimize:
		return "Optimizing your bag…"
	case wizard.KindPackingSteps:
		return "Building packing strategy…"
	case wizard.KindLuggage:
		return "Looking up suitcase…"
	}
	return "Loading…"
}

func (m *wizardModel) progress() string {
	parts := make([]string, 0, len(wizard.Steps))
	for i, step := range wizard.Steps {
		label := fmt.Sprintf("%d %s", i+1, step.Title())
		switch {
		case step == m.state.Step:
			parts = append(parts, stepActive.Render(label))
		case step < m.state.Step:
			parts = append(parts, stepDone.Render(label))
		default:
			parts = append(parts, stepTodo.Render(label))
		}
	}
	return strings.Join(parts, dimStyle.Render(" › "))
}

func (m *wizardModel) marker(slot int) string {
	if m.focus == slot {
		return focusStyle.Render("▶ ")
	}
	return "  "
}

func (m *wizardModel) row(slot int, label, value string) string {
	return m.marker(slot) + rowLabel.Render(label) + value + "\n"
}

func cycler(value string, focused bool) string {
	if focused {
		return focusStyle.Render("‹ " + value + " ›")
	}
	return textStyle.Render(value)
}

func (m *wizardModel) viewDetails() string {
	d := m.state.Draft
	var b strings.Builder
	b.WriteString(m.row(fDestination, "Destination", m.details[fDestination].View()))
	b.WriteString(m.row(fStart, "Start date", m.details[fStart].View()))
	b.WriteString(m.row(fEnd, "End date", m.details[fEnd].View()))
	b.WriteString(m.row(fAirline, "Airline", m.details[fAirline].View()))
	b.WriteString(m.row(fClass, "Travel class", cycler(d.TravelClass, m.focus == fClass)))
	b.WriteString(m.row(fPurpose, "Purpose", cycler(d.Purpose, m.focus == fPurpose)))
	b.WriteString(m.row(fLimit, "Limit (kg)", m.details[fLimit].View()))
	b.WriteString(m.row(fSize, "Suitcase", cycler(suitcaseLabel(d.Suitcase), m.focus == fSize)))
	b.WriteString(m.row(fLength, "Length", m.details[fLength].View()))
	b.WriteString(m.row(fWidth, "Width", m.details[fWidth].View()))
	b.WriteString(m.row(fDepth, "Depth", m.details[fDepth].View()))
	b.WriteString(m.row(fLookup, "Look up", m.details[fLookup].View()))
	return b.String()
}

func suitcaseLabel(s trip.SuitcaseSpec) string {
	label := fmt.Sprintf("%d L", s.VolumeLiters)
	for _, size := range trip.SuitcaseSizes {
		if size.Liters == s.VolumeLiters {
			label += " " + size.Label
		}
	}
	if s.Dims != nil {
		label += " (" + export.DimsLabel(*s.Dims) + ")"
	}
	return label
}

func itemLine(it trip.Item) string {
	line := fmt.Sprintf("%d× %s", it.Quantity, it.Name)
	line += dimStyle.Render("  " + string(it.Category))
	if it.Weight != nil {
		line += dimStyle.Render(fmt.Sprintf("  %.2f kg", trip.ToKilograms(*it.Weight)))
	}
	return line
}

func (m *wizardModel) listWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width - 4
}

func (m *wizardModel) viewItems() string {
	var b strings.Builder
	b.WriteString(m.row(iName, "Item", m.itemName.View()))
	b.WriteString(m.row(iQty, "Quantity", m.itemQty.View()))
	b.WriteString(m.row(iCategory, "Category", cycler(string(trip.Categories[m.category]), m.focus == iCategory)))
	b.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("Packing list (%d)", len(m.state.Draft.Items))) + "\n")
	if len(m.state.Draft.Items) == 0 {
		b.WriteString(dimStyle.Render("  Nothing yet. Add an item above.") + "\n")
	}
	for i, it := range m.state.Draft.Items {
		prefix := "  "
		if m.focus == iList && i == m.itemCur {
			prefix = focusStyle.Render("▶ ")
		}
		b.WriteString(prefix + truncate(itemLine(it), m.listWidth()) + "\n")
	}
	if m.focus == iList {
		b.WriteString(helpLine(m.keys.UpDown, m.keys.Remove) + "\n")
	}
	return b.String()
}

func (m *wizardModel) viewSuggestions() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("AI suggestions") + "\n")
	list := m.state.Draft.Suggestions
	if len(list) == 0 && !m.state.Busy() {
		b.WriteString(dimStyle.Render("  No suggestions.") + "\n")
	}
	for i, s := range list {
		prefix := "  "
		if m.focus == sList && i == m.suggCur {
			prefix = focusStyle.Render("▶ ")
		}
		box := "[ ]"
		if s.Selected {
			box = successStyle.Render("[x]")
		}
		line := box + " " + s.Text
		if s.Reason != "" {
			line += dimStyle.Render(" · " + s.Reason)
		}
		b.WriteString(prefix + truncate(line, m.listWidth()) + "\n")
	}
	b.WriteString("\n" + m.row(sCustom, "Your own", m.custom.View()))
	if m.focus == sList {
		add := m.keys.Enter
		add.SetHelp("enter", "add as item")
		b.WriteString(helpLine(m.keys.UpDown, m.keys.Toggle, add) + "\n")
	}
	return b.String()
}

func (m *wizardModel) viewWeight() string {
	d := m.state.Draft
	if m.state.Busy() && d.TotalWeightKg == 0 {
		return ""
	}
	ws := m.state.Weight()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %.1f / %.1f kg\n", weightBar(ws), ws.TotalKg, ws.LimitKg))
	b.WriteString(captionStyle(ws).Render(ws.Caption()) + "\n\n")
	for _, it := range d.Items {
		b.WriteString("  " + truncate(itemLine(it), m.listWidth()) + "\n")
	}
	if opt := d.Optimization; opt != nil {
		b.WriteString("\n" + sectionStyle.Render("Keep") + "\n")
		for _, it := range opt.Keep {
			b.WriteString("  " + truncate(itemLine(it), m.listWidth()) + "\n")
		}
		b.WriteString(sectionStyle.Render("Consider leaving behind") + "\n")
		for _, it := range opt.Drop {
			b.WriteString("  " + truncate(itemLine(it), m.listWidth()) + "\n")
		}
	}
	return b.String()
}

func (m *wizardModel) viewStrategy() string {
	plan := m.state.Draft.Plan
	if plan == nil {
		return ""
	}
	return renderPlan(*plan, m.listWidth())
}

func renderPlan(plan trip.PackingPlan, width int) string {
	var b strings.Builder
	if plan.SuitcaseSizeL > 0 {
		b.WriteString(rowLabel.Render("Suitcase") + suitcaseLabel(plan.Suitcase()) + "\n")
	}
	if len(plan.OrderedItems) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Packing order") + "\n")
		for i, it := range plan.OrderedItems {
			b.WriteString(truncate(fmt.Sprintf("%3d. %s", i+1, itemLine(it)), width) + "\n")
		}
	}
	b.WriteString(renderSteps(plan.Steps, width))
	return b.String()
}

func renderSteps(steps []trip.PackingStep, width int) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + sectionStyle.Render("Steps") + "\n")
	for i, s := range steps {
		b.WriteString(truncate(fmt.Sprintf("%3d. %s", i+1, lipgloss.NewStyle().Bold(true).Render(s.Title)), width) + "\n")
		if s.Body != "" {
			b.WriteString("     " + truncate(s.Body, width-5) + "\n")
		}
		if len(s.Items) > 0 {
			b.WriteString("     " + dimStyle.Render(truncate(strings.Join(s.Items, ", "), width-5)) + "\n")
		}
	}
	return b.String()
}
