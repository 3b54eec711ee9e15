// Package ui provides the interactive terminal screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tarefas/internal/todo"
)

// Option configures the screen.
type Option func(*screenConfig)

// screenConfig holds screen configuration.
type screenConfig struct {
	title       string
	subtitle    string
	placeholder string
	altScreen   bool
	logger      *log.Logger
}

// WithHeader sets the title and subtitle drawn at the top.
func WithHeader(title, subtitle string) Option {
	return func(c *screenConfig) {
		c.title = title
		c.subtitle = subtitle
	}
}

// WithPlaceholder sets the input placeholder.
func WithPlaceholder(placeholder string) Option {
	return func(c *screenConfig) {
		c.placeholder = placeholder
	}
}

// WithAltScreen enables the terminal alternate screen.
func WithAltScreen(enabled bool) Option {
	return func(c *screenConfig) {
		c.altScreen = enabled
	}
}

// WithLogger sets the logger for screen events.
func WithLogger(logger *log.Logger) Option {
	return func(c *screenConfig) {
		c.logger = logger
	}
}

// Run starts the screen on the terminal and blocks until the user quits
// or ctx is done.
func Run(ctx context.Context, store *todo.Store, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(store, opts...)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if model.cfg.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(model, programOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type alert struct {
	title string
	body  string
}

// Model is the bubbletea model of the task screen.
type Model struct {
	cfg      screenConfig
	store    *todo.Store
	input    textinput.Model
	cursor   int
	focus    focusArea
	alert    *alert
	showHelp bool
	width    int
	styles   styles
}

// NewModel creates the screen model for store.
func NewModel(store *todo.Store, opts ...Option) *Model {
	cfg := screenConfig{
		placeholder: "O que precisa ser feito?",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = cfg.placeholder
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()

	return &Model{
		cfg:    cfg,
		store:  store,
		input:  ti,
		focus:  focusInput,
		styles: defaultStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 10; w > 10 {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// The alert blocks every other key until dismissed.
	if m.alert != nil {
		switch key {
		case "enter", "esc", " ":
			m.alert = nil
		}
		return m, nil
	}

	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case "tab", "shift+tab":
		if m.focus == focusInput {
			m.focusList()
		} else {
			return m, m.focusInput()
		}
		return m, nil
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m.updateList(key)
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.submit()
		return m, nil
	case "esc", "down":
		m.focusList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateList(key string) (tea.Model, tea.Cmd) {
	list := m.store.List()
	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "a", "i", "/":
		return m, m.focusInput()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			return m, m.focusInput()
		}
	case "down", "j":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(list)-1, 0)
	case " ", "x", "enter":
		m.toggleSelected()
	case "d", "delete", "backspace":
		return m, m.removeSelected()
	}
	return m, nil
}

// submit adds the input text as a task. Empty input is ignored; a
// duplicate keeps the input and opens the alert.
func (m *Model) submit() {
	task, err := m.store.Add(m.input.Value())
	switch {
	case errors.Is(err, todo.ErrEmptyTitle):
		return
	case errors.Is(err, todo.ErrDuplicateTitle):
		m.cfg.logger.Info("duplicate title rejected", "title", todo.NormalizeTitle(m.input.Value()))
		m.alert = &alert{title: todo.DuplicateAlertTitle, body: todo.DuplicateAlertBody}
		return
	case err != nil:
		m.cfg.logger.Error("add task", "err", err)
		return
	}

	m.input.Reset()
	m.cursor = todo.IndexOf(m.store.List(), task.ID)
}

func (m *Model) toggleSelected() {
	list := m.store.List()
	if m.cursor < 0 || m.cursor >= len(list) {
		return
	}
	m.store.Toggle(list[m.cursor].ID)
}

// removeSelected removes the task under the cursor. When the list empties
// focus moves back to the input and its blink command is returned.
func (m *Model) removeSelected() tea.Cmd {
	list := m.store.List()
	if m.cursor < 0 || m.cursor >= len(list) {
		return nil
	}
	m.store.Remove(list[m.cursor].ID)

	if n := m.store.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.store.Len() == 0 {
		m.cursor = 0
		return m.focusInput()
	}
	return nil
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	if m.store.Len() == 0 {
		return
	}
	m.focus = focusList
	m.input.Blur()
	if m.cursor >= m.store.Len() {
		m.cursor = m.store.Len() - 1
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
