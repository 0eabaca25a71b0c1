package repl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/sitegen/lang"
	"github.com/ardnew/sitegen/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help       Print this help
  vars       List variables assigned in this session
  load FILE  Run a script file in the session environment
  clear      Clear screen
  quit       Exit REPL

Usage:
  Type a statement to run it; the value of an expression is printed
  Assignments (name = expr) persist for the rest of the session
  Completions appear as you type; Tab / Shift-Tab cycle through them
  Up/Down walk the history; Shift+Up/Down stay within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit
`

// inputMode is the kind of line being edited.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	outputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx          context.Context
	env          *lang.Env
	builtins     map[string]bool // names bound before the session began
	logger       log.Logger
	input        textinput.Model
	history      *History
	historyIdx   int
	matches      fuzzy.Matches
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	mode         inputMode
	saved        [2]string // input of the inactive mode
	quitting     bool
}

const defaultWidth = 80

// Run starts an interactive session over env. History is persisted at
// historyPath unless it is empty.
func Run(
	ctx context.Context,
	env *lang.Env,
	historyPath string,
	logger log.Logger,
) error {
	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("entries", history.Len()),
	)

	_, err := tea.NewProgram(
		newModel(ctx, env, history, logger),
		tea.WithContext(ctx),
	).Run()

	return err
}

func newModel(
	ctx context.Context,
	env *lang.Env,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	builtins := make(map[string]bool)
	for _, name := range env.Keys() {
		builtins[name] = true
	}

	return model{
		ctx:        ctx,
		env:        env,
		builtins:   builtins,
		logger:     logger,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch input := m.input.Value(); {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len(),
		)))

	case strings.TrimSpace(input) == "":
		hint := "Type a statement or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	default:
		b.WriteString(m.renderCandidateBar())
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.walkHistory(-1, false), nil

	case tea.KeyDown:
		return m.walkHistory(1, false), nil

	case tea.KeyShiftUp:
		return m.walkHistory(-1, true), nil

	case tea.KeyShiftDown:
		return m.walkHistory(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchMode(modeCtrl), nil
		}

		return m.switchMode(modeEval), nil
	}

	// A space ends tab-cycling and keeps the chosen candidate.
	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	}

	typed := msg.Type == tea.KeyRunes
	if !typed {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(typed)

	return m, cmd
}

// cycle moves the tab selection by step, completing the word in place.
// A lone candidate is accepted immediately.
func (m model) cycle(step int) model {
	switch n := len(m.matches); {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord substitutes text for the word being completed.
func (m *model) replaceWord(text string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + text + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(text))
	m.wordEnd = m.wordStart + len(text)
}

// refreshMatches recomputes completions. With autoConfirm, a word that
// already equals its only candidate is accepted so the bar clears.
func (m *model) refreshMatches(autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// submit runs the current line in the active mode.
func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.saved = [2]string{}
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.command(input)
	}

	echo := tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(input))

	return m, tea.Sequence(echo, m.eval(input))
}

// eval runs input in the session environment and returns the command that
// prints its output and value.
func (m model) eval(input string) tea.Cmd {
	var out strings.Builder

	v, err := m.env.Run(m.ctx, input, &out)

	m.logger.TraceContext(m.ctx, "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil),
	)

	var cmds []tea.Cmd

	if s := strings.TrimSuffix(out.String(), "\n"); s != "" {
		cmds = append(cmds, tea.Println(outputStyle.Render(s)))
	}

	switch {
	case err != nil:
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	case v != nil:
		cmds = append(cmds, tea.Println(resultStyle.Render(lang.String(v))))
	}

	return tea.Sequence(cmds...)
}

// command runs a control-mode line.
func (m model) command(input string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.listVars()))

	case "l", "load":
		return m, tea.Sequence(echo, m.load(arg))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + name + " (try 'help')"),
		)
	}
}

// load runs the script file at path in the session environment.
func (m model) load(path string) tea.Cmd {
	if path == "" {
		return tea.Println(errorStyle.Render("usage: load FILE"))
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return tea.Println(errorStyle.Render(
			"error: " + ErrLoad.Wrap(err).With(slog.String("file", path)).Error(),
		))
	}

	return m.eval(string(b))
}

// listVars renders the names assigned during the session with their values.
func (m model) listVars() string {
	var b strings.Builder

	for _, name := range m.sessionVars() {
		v, _ := m.env.Get(name)

		preview := lang.String(v)
		if len(preview) > 40 {
			preview = preview[:37] + "..."
		}

		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview))
	}

	if b.Len() == 0 {
		return hintStyle.Render("  (no variables)")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// sessionVars returns the sorted names bound since the session began.
func (m model) sessionVars() []string {
	return slices.DeleteFunc(m.env.Keys(), func(name string) bool {
		return m.builtins[name]
	})
}

// walkHistory moves through history by step. With sameMode, entries of the
// other mode are skipped; otherwise the mode follows the entry.
func (m model) walkHistory(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m
	}

	if step > 0 {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m
}

// switchMode changes the input mode, stashing the current line so toggling
// back restores it.
func (m model) switchMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.saved[m.mode] = m.input.Value()
	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode])
	m.input.SetCursor(len(m.saved[mode]))
	m.refreshMatches(false)

	return m
}
