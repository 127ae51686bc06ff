package tui

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/packit/internal/trip"
	"github.com/jask/packit/internal/wizard"
)

// Focus slots of the details step. Class, purpose and size are cyclers; the
// rest are text fields.
const (
	fDestination = iota
	fStart
	fEnd
	fAirline
	fClass
	fPurpose
	fLimit
	fSize
	fLength
	fWidth
	fDepth
	fLookup
	detailSlots
)

// Focus slots of the items step.
const (
	iName = iota
	iQty
	iCategory
	iList
	itemSlots
)

// Focus slots of the suggestions step.
const (
	sList = iota
	sCustom
	suggestionSlots
)

var slotCount = map[wizard.Step]int{
	wizard.StepDetails:     detailSlots,
	wizard.StepItems:       itemSlots,
	wizard.StepSuggestions: suggestionSlots,
}

type resultMsg struct{ res wizard.Result }

type savedMsg struct{ TripID string }

// wizardModel is the form around a wizard.State. Every edit goes through the
// state's transitions; effects run as commands and come back as resultMsg.
type wizardModel struct {
	ctx    context.Context
	runner *wizard.Runner
	keys   keyMap
	state  wizard.State
	width  int

	focus    int
	details  [detailSlots]textinput.Model
	itemName textinput.Model
	itemQty  textinput.Model
	category int
	itemCur  int
	custom   textinput.Model
	suggCur  int
	status   string
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = limit
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func newWizardModel(ctx context.Context, runner *wizard.Runner, d trip.Draft) *wizardModel {
	m := &wizardModel{
		ctx:      ctx,
		runner:   runner,
		keys:     newKeyMap(),
		state:    wizard.New(d),
		itemName: newInput("Item name", 80),
		itemQty:  newInput("1", 3),
		custom:   newInput("Add your own suggestion", 80),
	}
	m.details[fDestination] = newInput("Tokyo", 80)
	m.details[fStart] = newInput("YYYY-MM-DD", 10)
	m.details[fEnd] = newInput("YYYY-MM-DD", 10)
	m.details[fAirline] = newInput("Airline", 60)
	m.details[fLimit] = newInput("23", 6)
	m.details[fLength] = newInput("cm", 6)
	m.details[fWidth] = newInput("cm", 6)
	m.details[fDepth] = newInput("cm", 6)
	m.details[fLookup] = newInput("Brand and model", 80)

	m.details[fDestination].SetValue(d.Destination)
	m.details[fStart].SetValue(d.StartDate)
	m.details[fEnd].SetValue(d.EndDate)
	m.details[fAirline].SetValue(d.Airline)
	m.details[fLimit].SetValue(strconv.FormatFloat(d.LimitKg, 'f', -1, 64))
	m.pullDims()
	m.setFocus(0)
	return m
}

func (m *wizardModel) run(e wizard.Effect) tea.Cmd {
	if e == nil {
		return nil
	}
	ctx, r := m.ctx, m.runner
	return func() tea.Msg { return resultMsg{res: r.Run(ctx, e)} }
}

func (m *wizardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case resultMsg:
		return m.observe(msg.res)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *wizardModel) observe(res wizard.Result) tea.Cmd {
	s, eff := wizard.Observe(m.state, res)
	m.state = s
	m.pullDims()
	if _, ok := res.(wizard.SaveResult); ok && s.Phase == wizard.PhaseSaved {
		id := s.TripID
		return func() tea.Msg { return savedMsg{TripID: id} }
	}
	return m.run(eff)
}

func (m *wizardModel) transition(s wizard.State, eff wizard.Effect) tea.Cmd {
	stepChanged := s.Step != m.state.Step
	m.state = s
	m.status = ""
	if stepChanged {
		m.setFocus(0)
	}
	m.pullDims()
	return m.run(eff)
}

func (m *wizardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		s, eff, _ := m.state.Next()
		return m.transition(s, eff)
	case key.Matches(msg, m.keys.Back):
		s, eff := m.state.Back()
		return m.transition(s, eff)
	case key.Matches(msg, m.keys.Retry):
		s, eff := m.state.Retry()
		return m.transition(s, eff)
	case key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)
		return nil
	}
	switch m.state.Step {
	case wizard.StepDetails:
		return m.keyDetails(msg)
	case wizard.StepItems:
		return m.keyItems(msg)
	case wizard.StepSuggestions:
		return m.keySuggestions(msg)
	}
	return nil
}

func (m *wizardModel) moveFocus(delta int) {
	n := slotCount[m.state.Step]
	if n == 0 {
		return
	}
	m.setFocus((m.focus + delta + n) % n)
}

func (m *wizardModel) setFocus(slot int) {
	m.focus = slot
	for i := range m.details {
		m.details[i].Blur()
	}
	m.itemName.Blur()
	m.itemQty.Blur()
	m.custom.Blur()
	if in := m.focusedInput(); in != nil {
		in.Focus()
	}
}

// focusedInput returns the text field under focus, or nil for cyclers and
// lists.
func (m *wizardModel) focusedInput() *textinput.Model {
	switch m.state.Step {
	case wizard.StepDetails:
		switch m.focus {
		case fClass, fPurpose, fSize:
			return nil
		}
		return &m.details[m.focus]
	case wizard.StepItems:
		switch m.focus {
		case iName:
			return &m.itemName
		case iQty:
			return &m.itemQty
		}
	case wizard.StepSuggestions:
		if m.focus == sCustom {
			return &m.custom
		}
	}
	return nil
}

func (m *wizardModel) typeInto(msg tea.KeyMsg) (tea.Cmd, bool) {
	in := m.focusedInput()
	if in == nil {
		return nil, false
	}
	before := in.Value()
	next, cmd := in.Update(msg)
	*in = next
	return cmd, in.Value() != before
}

func cycle(i, delta, n int) int {
	if i < 0 {
		i = 0
	}
	return (i + delta + n) % n
}

func (m *wizardModel) keyDetails(msg tea.KeyMsg) tea.Cmd {
	d := m.state.Draft.Details
	if key.Matches(msg, m.keys.Cycle) {
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.focus {
		case fClass:
			d.TravelClass = trip.TravelClasses[cycle(slices.Index(trip.TravelClasses, d.TravelClass), delta, len(trip.TravelClasses))]
			m.state = m.state.SetDetails(d)
			return nil
		case fPurpose:
			d.Purpose = trip.Purposes[cycle(slices.Index(trip.Purposes, d.Purpose), delta, len(trip.Purposes))]
			m.state = m.state.SetDetails(d)
			return nil
		case fSize:
			sizes := trip.SuitcaseSizes
			cur := slices.IndexFunc(sizes, func(s trip.SuitcaseSize) bool { return s.Liters == m.state.Draft.Suitcase.VolumeLiters })
			m.state = m.state.SetSuitcaseSize(sizes[cycle(cur, delta, len(sizes))].Liters)
			m.pullDims()
			return nil
		}
	}
	if key.Matches(msg, m.keys.Enter) {
		if m.focus == fLookup {
			s, eff := m.state.LookupLuggage(m.details[fLookup].Value())
			return m.transition(s, eff)
		}
		m.moveFocus(1)
		return nil
	}

	cmd, changed := m.typeInto(msg)
	if !changed {
		return cmd
	}
	switch m.focus {
	case fLength, fWidth, fDepth:
		m.state = m.state.SetDimsInput(trip.DimsInput{
			Length: m.details[fLength].Value(),
			Width:  m.details[fWidth].Value(),
			Depth:  m.details[fDepth].Value(),
		})
	case fLookup:
	default:
		d.Destination = m.details[fDestination].Value()
		d.StartDate = strings.TrimSpace(m.details[fStart].Value())
		d.EndDate = strings.TrimSpace(m.details[fEnd].Value())
		d.Airline = m.details[fAirline].Value()
		d.LimitKg = trip.ParseLimitKg(m.details[fLimit].Value())
		m.state = m.state.SetDetails(d)
	}
	return cmd
}

// pullDims copies the draft's dimension text into the fields; a luggage
// lookup or a size change rewrites it.
func (m *wizardModel) pullDims() {
	in := m.state.Draft.DimsInput
	for slot, v := range map[int]string{fLength: in.Length, fWidth: in.Width, fDepth: in.Depth} {
		if m.details[slot].Value() != v {
			m.details[slot].SetValue(v)
		}
	}
}

func (m *wizardModel) addItem() {
	it := trip.NewItem(m.itemName.Value(), trip.ParseQuantity(m.itemQty.Value()), trip.Categories[m.category])
	s, ok := m.state.AddItem(it)
	if !ok {
		m.status = "Item name is required"
		return
	}
	m.state = s
	m.status = ""
	m.itemName.SetValue("")
	m.itemQty.SetValue("")
	m.itemCur = len(s.Draft.Items) - 1
	m.setFocus(iName)
}

func (m *wizardModel) keyItems(msg tea.KeyMsg) tea.Cmd {
	items := m.state.Draft.Items
	switch m.focus {
	case iCategory:
		if key.Matches(msg, m.keys.Cycle) {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.category = cycle(m.category, delta, len(trip.Categories))
			return nil
		}
	case iList:
		switch {
		case key.Matches(msg, m.keys.UpDown):
			if msg.String() == "up" && m.itemCur > 0 {
				m.itemCur--
			}
			if msg.String() == "down" && m.itemCur < len(items)-1 {
				m.itemCur++
			}
		case key.Matches(msg, m.keys.Remove):
			m.state = m.state.RemoveItem(m.itemCur)
			m.itemCur = max(0, min(m.itemCur, len(m.state.Draft.Items)-1))
		}
		return nil
	}
	if key.Matches(msg, m.keys.Enter) {
		m.addItem()
		return nil
	}
	cmd, _ := m.typeInto(msg)
	return cmd
}

func (m *wizardModel) keySuggestions(msg tea.KeyMsg) tea.Cmd {
	list := m.state.Draft.Suggestions
	if m.focus == sCustom {
		if key.Matches(msg, m.keys.Enter) {
			text := strings.TrimSpace(m.custom.Value())
			if text == "" {
				return nil
			}
			m.state = m.state.AddCustomSuggestion(text)
			m.custom.SetValue("")
			m.suggCur = len(m.state.Draft.Suggestions) - 1
			return nil
		}
		cmd, _ := m.typeInto(msg)
		return cmd
	}
	if len(list) == 0 {
		return nil
	}
	m.suggCur = max(0, min(m.suggCur, len(list)-1))
	switch {
	case key.Matches(msg, m.keys.UpDown):
		if msg.String() == "up" && m.suggCur > 0 {
			m.suggCur--
		}
		if msg.String() == "down" && m.suggCur < len(list)-1 {
			m.suggCur++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.state = m.state.ToggleSuggestion(list[m.suggCur].ID)
	case key.Matches(msg, m.keys.Enter):
		if s, ok := m.state.QuickAddSuggestion(list[m.suggCur].ID); ok {
			m.state = s
			m.status = "Added " + list[m.suggCur].Text + " to items"
		}
	}
	return nil
}
