// Package tui is the terminal front end: the trip list, the five-step
// wizard and the saved-trip summary.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/packit/internal/service"
	"github.com/jask/packit/internal/trip"
	"github.com/jask/packit/internal/wizard"
)

// Screen selects what the app shows.
type Screen int

const (
	ScreenTrips Screen = iota
	ScreenWizard
	ScreenSummary
)

// Deps are the collaborators the screens run against.
type Deps struct {
	Runner *wizard.Runner
	Trips  *service.TripService
	// Draft returns the starting draft for a new trip.
	Draft func() trip.Draft
}

type tripsMsg []trip.Canonical

type tripMsg trip.Canonical

type errMsg struct{ error }

// App ties together views.
type App struct {
	ctx     context.Context
	deps    Deps
	keys    keyMap
	screen  Screen
	wiz     *wizardModel
	list    list.Model
	current *trip.Canonical
	status  string
	width   int
	height  int
}

// New returns the app opened on start.
func New(ctx context.Context, deps Deps, start Screen) *App {
	if deps.Draft == nil {
		deps.Draft = trip.NewDraft
	}
	a := &App{ctx: ctx, deps: deps, keys: newKeyMap(), list: newTripList()}
	if start == ScreenWizard {
		a.startWizard()
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.screen == ScreenTrips {
		return a.loadTrips()
	}
	return nil
}

func (a *App) startWizard() {
	a.screen = ScreenWizard
	a.status = ""
	a.wiz = newWizardModel(a.ctx, a.deps.Runner, a.deps.Draft())
	a.wiz.width = a.width
}

func (a *App) loadTrips() tea.Cmd {
	return func() tea.Msg {
		trips, err := a.deps.Trips.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return tripsMsg(trips)
	}
}

func (a *App) loadTrip(id string) tea.Cmd {
	return func() tea.Msg {
		c, err := a.deps.Trips.Load(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return tripMsg(c)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.list.SetSize(m.Width, max(6, m.Height-4))
		if a.wiz != nil {
			a.wiz.width = m.Width
		}
		return a, nil
	case tripsMsg:
		a.list.SetItems(tripItems(m))
		if len(m) == 0 {
			a.status = "No trips yet. Press n to plan one."
		}
		return a, nil
	case tripMsg:
		c := trip.Canonical(m)
		a.current = &c
		a.screen = ScreenSummary
		return a, nil
	case savedMsg:
		a.status = "Trip saved"
		return a, a.loadTrip(m.TripID)
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	case resultMsg:
		if a.wiz == nil {
			return a, nil
		}
		return a, a.wiz.update(m)
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenWizard:
		if key.Matches(m, a.keys.Cancel) {
			a.wiz = nil
			a.screen = ScreenTrips
			return a, a.loadTrips()
		}
		return a, a.wiz.update(m)
	case ScreenSummary:
		switch {
		case key.Matches(m, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(m, a.keys.Cancel):
			a.screen = ScreenTrips
			a.status = ""
			return a, a.loadTrips()
		}
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.New):
		a.startWizard()
		return a, nil
	case key.Matches(m, a.keys.Reload):
		a.status = ""
		return a, a.loadTrips()
	case key.Matches(m, a.keys.Enter):
		if it, ok := a.list.SelectedItem().(tripItem); ok {
			return a, a.loadTrip(it.trip.ID)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(m)
	return a, cmd
}

func (a *App) View() string {
	var b strings.Builder
	switch a.screen {
	case ScreenWizard:
		return a.wiz.view()
	case ScreenSummary:
		if a.current != nil {
			b.WriteString(RenderSummary(*a.current, a.width))
		}
		b.WriteString("\n")
		if a.status != "" {
			b.WriteString(successStyle.Render(a.status) + "\n")
		}
		b.WriteString(helpLine(a.keys.Cancel, a.keys.Quit))
		return b.String()
	}
	b.WriteString(a.list.View() + "\n")
	if a.status != "" {
		b.WriteString(dimStyle.Render(a.status) + "\n")
	}
	open := a.keys.Enter
	open.SetHelp("enter", "open")
	b.WriteString(helpLine(a.keys.New, open, a.keys.UpDown, a.keys.Reload, a.keys.Quit))
	return b.String()
}
