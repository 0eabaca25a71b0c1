package repl

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/sitegen/lang"
	"github.com/ardnew/sitegen/log"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), lang.NewEnv(), NewHistory(""), log.Discard())
}

func typeLine(m model, line string) model {
	m.input.SetValue(line)
	m.input.SetCursor(len(line))

	return m
}

func TestSubmitSharesEnvironment(t *testing.T) {
	m := newTestModel(t)

	m, _ = typeLine(m, "greeting = \"hi\"").submit()
	m, _ = typeLine(m, "count = len(greeting)").submit()

	if v, ok := m.env.Get("count"); !ok || v != 2 {
		t.Errorf("count = %v (%v), want 2", v, ok)
	}

	if got, want := m.sessionVars(), []string{"count", "greeting"}; !slices.Equal(got, want) {
		t.Errorf("sessionVars = %v, want %v", got, want)
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.history.Len() != 2 {
		t.Errorf("history length = %d, want 2", m.history.Len())
	}
}

func TestSubmitError(t *testing.T) {
	m := newTestModel(t)

	m, cmd := typeLine(m, "undefined_fn(1)").submit()
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	if len(m.sessionVars()) != 0 {
		t.Errorf("failed statement bound variables: %v", m.sessionVars())
	}
}

func TestLoadCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.script")
	if err := os.WriteFile(path, []byte("a = 1\nb = a + 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t).switchMode(modeCtrl)
	m, _ = typeLine(m, "load "+path).submit()

	if v, _ := m.env.Get("b"); v != 2 {
		t.Errorf("b = %v, want 2", v)
	}
}

func TestSwitchModeRestoresInput(t *testing.T) {
	m := typeLine(newTestModel(t), "1 + ")

	m = m.switchMode(modeCtrl)
	if m.input.Value() != "" {
		t.Errorf("command line = %q, want empty", m.input.Value())
	}

	m = typeLine(m, "he").switchMode(modeEval)
	if m.input.Value() != "1 + " {
		t.Errorf("eval line = %q, want %q", m.input.Value(), "1 + ")
	}

	if m = m.switchMode(modeCtrl); m.input.Value() != "he" {
		t.Errorf("command line = %q, want %q", m.input.Value(), "he")
	}
}

func TestWalkHistory(t *testing.T) {
	m := newTestModel(t)

	for _, e := range []HistoryEntry{
		{"x = 1", modeEval},
		{"vars", modeCtrl},
		{"x + 1", modeEval},
	} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m = m.walkHistory(-1, false)
	m = m.walkHistory(-1, false)

	if m.input.Value() != "vars" || m.mode != modeCtrl {
		t.Errorf("got %q in mode %d, want vars in command mode", m.input.Value(), m.mode)
	}

	m = m.switchMode(modeEval)
	m.historyIdx = m.history.Len()

	m = m.walkHistory(-1, true)
	m = m.walkHistory(-1, true)

	if m.input.Value() != "x = 1" || m.mode != modeEval {
		t.Errorf("got %q in mode %d, want first eval entry", m.input.Value(), m.mode)
	}

	m = m.walkHistory(1, false)
	m = m.walkHistory(1, false)
	m = m.walkHistory(1, false)

	if m.historyIdx != m.history.Len() || m.input.Value() != "" {
		t.Errorf("walking past the end left %q at %d", m.input.Value(), m.historyIdx)
	}
}

func TestTabCycling(t *testing.T) {
	env := lang.NewEnv(lang.WithVars(map[string]any{
		"site": map[string]any{"alpha": 1, "beta": 2},
	}))

	m := typeLine(newModel(t.Context(), env, NewHistory(""), log.Discard()), "site.")
	m.refreshMatches(false)

	m = m.cycle(1)
	first := m.input.Value()

	m = m.cycle(1)
	second := m.input.Value()

	if first == second {
		t.Errorf("cycling did not change the candidate: %q", first)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := updated.(model).input.Value(); got != "site." {
		t.Errorf("Esc restored %q, want %q", got, "site.")
	}
}
