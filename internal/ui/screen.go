package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tally/internal/counter"
)

type page int

const (
	pageMain page = iota
	pageCredits
)

// Screen hosts a counter.Controller in Bubble Tea: it turns key presses into
// controller actions and renders the controller's state.
type Screen struct {
	ctrl *counter.Controller
	keys keyMap
	help help.Model
	name textinput.Model

	page    page
	credits counter.Credits

	saved   bool
	saveErr error
}

// NewScreen initializes ctrl if it is still loading and fills the name field
// from it.
func NewScreen(ctrl *counter.Controller) Screen {
	if ctrl.State() == counter.StateLoading {
		ctrl.Initialize()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "your name..."
	ti.CharLimit = 200
	ti.Width = 32
	ti.SetValue(ctrl.Name())

	h := help.New()
	h.Styles.ShortKey = Current().Accent
	h.Styles.ShortDesc = Current().Muted
	h.Styles.ShortSeparator = Current().Muted

	return Screen{
		ctrl: ctrl,
		keys: newKeyMap(),
		help: h,
		name: ti,
	}
}

func (m Screen) Init() tea.Cmd { return nil }

func (m Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Close()
			return m, tea.Quit
		}
		if m.page == pageCredits {
			if key.Matches(msg, m.keys.Back) {
				m.page = pageMain
			}
			return m, nil
		}
		if m.name.Focused() {
			return m.updateEditing(msg)
		}
		return m.updateMain(msg)
	}

	if m.name.Focused() {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Screen) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SaveAny):
		return m.save()
	case key.Matches(msg, m.keys.Done):
		m.name.Blur()
		m.ctrl.SetName(m.name.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	m.ctrl.SetName(m.name.Value())
	return m, cmd
}

func (m Screen) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Count):
		m.ctrl.Increment()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Credits):
		m.credits = m.ctrl.OpenCredits()
		m.page = pageCredits
	case key.Matches(msg, m.keys.Edit):
		m.name.CursorEnd()
		cmd := m.name.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m Screen) save() (tea.Model, tea.Cmd) {
	m.ctrl.SetName(m.name.Value())
	m.saveErr = m.ctrl.ExitAndSave()
	m.saved = m.saveErr == nil
	return m, tea.Quit
}

func (m Screen) View() string {
	if m.ctrl.State() == counter.StateClosed {
		return ""
	}
	if m.page == pageCredits {
		return m.creditsView()
	}
	t := Current()

	label := t.Muted.Render("Name  ")
	if m.name.Focused() {
		label = t.Focus.Render("Name") + "  "
	}

	var km help.KeyMap = m.keys
	if m.name.Focused() {
		km = editingKeys{m.keys}
	}

	lines := []string{
		t.Title.Render("tally"),
		"",
		label + m.name.View(),
		t.Muted.Render("Count ") + t.Count.Render(strconv.Itoa(m.ctrl.Count())),
		"",
		m.help.View(km),
	}
	return panelString(strings.Join(lines, "\n"))
}

func (m Screen) creditsView() string {
	t := Current()
	lines := []string{t.Title.Render(m.credits.Title), ""}
	lines = append(lines, m.credits.Lines...)
	lines = append(lines, "", m.help.View(creditsKeys{m.keys}))
	return panelString(strings.Join(lines, "\n"))
}

// Run shows the screen until the user saves or quits. saved reports whether
// a commit happened; a failed commit is returned as the error.
func Run(ctrl *counter.Controller, opts ...tea.ProgramOption) (saved bool, err error) {
	p := tea.NewProgram(NewScreen(ctrl), opts...)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Screen)
	if !ok {
		return false, nil
	}
	return fm.saved, fm.saveErr
}
