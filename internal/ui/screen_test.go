package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tally/internal/counter"
	"github.com/idilsaglam/tally/internal/model"
	"github.com/idilsaglam/tally/internal/store"
	"github.com/idilsaglam/tally/internal/store/memstore"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msgs through Update and returns the final screen and the last
// command.
func press(t *testing.T, m Screen, msgs ...tea.Msg) (Screen, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Screen)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewScreenLoadsStoredValues(t *testing.T) {
	s := memstore.New().Seed(map[string]any{model.KeyName: "Alice", model.KeyCount: 5})
	ctrl := counter.New(s)
	m := NewScreen(ctrl)
	if ctrl.State() != counter.StateReady {
		t.Fatalf("state = %v, want ready", ctrl.State())
	}
	if m.name.Value() != "Alice" {
		t.Errorf("name field = %q, want Alice", m.name.Value())
	}
	view := m.View()
	if !strings.Contains(view, "Alice") || !strings.Contains(view, "5") {
		t.Errorf("view missing stored values:\n%s", view)
	}
}

func TestCountAndResetKeys(t *testing.T) {
	ctrl := counter.New(memstore.New())
	m := NewScreen(ctrl)

	m, _ = press(t, m, runes("+"), runes("c"), tea.KeyMsg{Type: tea.KeySpace})
	if ctrl.Count() != 3 {
		t.Fatalf("count = %d, want 3", ctrl.Count())
	}
	m, _ = press(t, m, runes("r"))
	if ctrl.Count() != 0 {
		t.Fatalf("count after reset = %d, want 0", ctrl.Count())
	}
	_, _ = press(t, m, runes("+"))
	if ctrl.Count() != 1 {
		t.Errorf("count = %d, want 1", ctrl.Count())
	}
}

func TestEditNameThenSave(t *testing.T) {
	s := memstore.New()
	ctrl := counter.New(s)
	m := NewScreen(ctrl)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.name.Focused() {
		t.Fatal("tab should focus the name field")
	}
	// While editing, letters go to the field instead of triggering actions.
	m, _ = press(t, m, runes("r"), runes("o"), runes("x"))
	if m.name.Value() != "rox" || ctrl.Name() != "rox" {
		t.Fatalf("name = %q / %q, want rox", m.name.Value(), ctrl.Name())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.name.Focused() {
		t.Fatal("enter should leave the name field")
	}

	m, _ = press(t, m, runes("+"), runes("+"))
	m, cmd := press(t, m, runes("x"))
	if !isQuit(cmd) {
		t.Fatal("exit and save should quit")
	}
	if !m.saved || m.saveErr != nil {
		t.Fatalf("saved = %v, err = %v", m.saved, m.saveErr)
	}
	snap := s.Snapshot()
	if snap[model.KeyName] != "rox" || snap[model.KeyCount] != 2 {
		t.Errorf("store = %v, want Name=rox Count=2", snap)
	}
	if m.View() != "" {
		t.Error("closed screen should render nothing")
	}
}

func TestCtrlSSavesWhileEditing(t *testing.T) {
	s := memstore.New()
	ctrl := counter.New(s)
	m := NewScreen(ctrl)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("Al"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !isQuit(cmd) || !m.saved {
		t.Fatal("ctrl+s should save and quit")
	}
	if got, _ := s.GetString(model.KeyName, ""); got != "Al" {
		t.Errorf("stored name = %q, want Al", got)
	}
}

func TestQuitDiscardsChanges(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		s := memstore.New().Seed(map[string]any{model.KeyCount: 4})
		ctrl := counter.New(s)
		m := NewScreen(ctrl)
		m, _ = press(t, m, runes("+"))
		m, cmd := press(t, m, msg)
		if !isQuit(cmd) {
			t.Fatalf("%q should quit", msg.String())
		}
		if m.saved || s.Commits != 0 {
			t.Errorf("%q: saved = %v, commits = %d", msg.String(), m.saved, s.Commits)
		}
		if ctrl.State() != counter.StateClosed {
			t.Errorf("%q: state = %v, want closed", msg.String(), ctrl.State())
		}
	}
}

func TestCreditsPage(t *testing.T) {
	s := memstore.New()
	ctrl := counter.New(s, counter.WithCredits(counter.Credits{Title: "Thanks", Lines: []string{"made by us"}}))
	m := NewScreen(ctrl)
	m, _ = press(t, m, runes("+"), runes("m"))
	if m.page != pageCredits {
		t.Fatal("m should open credits")
	}
	if view := m.View(); !strings.Contains(view, "made by us") {
		t.Errorf("credits view:\n%s", view)
	}
	// Action keys do nothing on the credits page.
	m, _ = press(t, m, runes("+"), runes("r"))
	if ctrl.Count() != 1 {
		t.Errorf("count = %d, want 1", ctrl.Count())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.page != pageMain {
		t.Error("esc should return to the main page")
	}
	if s.Commits != 0 || ctrl.State() != counter.StateReady {
		t.Errorf("credits changed state: commits %d, state %v", s.Commits, ctrl.State())
	}
}

func TestSaveFailureReported(t *testing.T) {
	s := memstore.New()
	s.WriteErr = errors.New("disk full")
	ctrl := counter.New(s)
	m := NewScreen(ctrl)
	m, cmd := press(t, m, runes("x"))
	if !isQuit(cmd) {
		t.Fatal("a failed save still closes the screen")
	}
	if m.saved || !errors.Is(m.saveErr, store.ErrUnavailable) {
		t.Errorf("saved = %v, err = %v", m.saved, m.saveErr)
	}
}

func TestThemesRender(t *testing.T) {
	defer SetTheme("classic")
	for _, name := range []string{"classic", "neon", "mono", "unknown"} {
		SetTheme(name)
		m := NewScreen(counter.New(memstore.New()))
		if !strings.Contains(m.View(), "tally") {
			t.Errorf("theme %s: title missing", name)
		}
	}
}
