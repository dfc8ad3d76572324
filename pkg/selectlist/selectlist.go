// Package selectlist implements a single-choice terminal list: a prompt
// followed by options, navigated with the arrow keys and confirmed with Enter.
package selectlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user leaves the list without choosing.
var ErrAborted = errors.New("selection aborted")

const (
	cursorMarker = "> "
	blankMarker  = "  "
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Abort   key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Abort:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
}

// Model is the bubbletea model behind the list.
type Model struct {
	prompt  string
	options []string
	cursor  int
	chosen  bool
	aborted bool
	styled  bool
}

// New returns a model with the cursor on the first option. It panics when
// options is empty.
func New(prompt string, options []string) Model {
	if len(options) == 0 {
		panic("selectlist: options must not be empty")
	}
	opts := make([]string, len(options))
	copy(opts, options)
	return Model{prompt: prompt, options: opts}
}

// Cursor returns the highlighted index.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the highlighted option.
func (m Model) Selected() string { return m.options[m.cursor] }

// Chosen reports whether the user confirmed a choice.
func (m Model) Chosen() bool { return m.chosen }

// Aborted reports whether the user left without choosing.
func (m Model) Aborted() bool { return m.aborted }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.chosen || m.aborted {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Confirm):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Abort):
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	return render(m.prompt, m.options, m.cursor, m.styled)
}

// Render draws one frame: the prompt line followed by one line per option,
// the option at cursor marked. The frame always has len(options)+1 lines.
func Render(prompt string, options []string, cursor int) string {
	return render(prompt, options, cursor, false)
}

func render(prompt string, options []string, cursor int, styled bool) string {
	var sb strings.Builder
	if styled {
		sb.WriteString(promptStyle.Render(prompt))
	} else {
		sb.WriteString(prompt)
	}
	for i, opt := range options {
		sb.WriteString("\n")
		if i != cursor {
			sb.WriteString(blankMarker + opt)
			continue
		}
		if styled {
			sb.WriteString(selectedStyle.Render(cursorMarker + opt))
		} else {
			sb.WriteString(cursorMarker + opt)
		}
	}
	return sb.String()
}

type runConfig struct {
	in     io.Reader
	out    io.Writer
	styled bool
}

// Option configures Run.
type Option func(*runConfig)

// WithInput reads key events from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(c *runConfig) { c.in = r }
}

// WithOutput draws frames to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *runConfig) { c.out = w }
}

// WithStyle enables lipgloss styling of the prompt and cursor line.
func WithStyle(enabled bool) Option {
	return func(c *runConfig) { c.styled = enabled }
}

// Run blocks until the user confirms an option and returns it. The returned
// value is always one of options. The terminal is restored before Run returns,
// including on abort.
func Run(ctx context.Context, prompt string, options []string, opts ...Option) (string, error) {
	cfg := runConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	model := New(prompt, options)
	model.styled = cfg.styled

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.in != nil {
		progOpts = append(progOpts, tea.WithInput(cfg.in))
	}
	if cfg.out != nil {
		progOpts = append(progOpts, tea.WithOutput(cfg.out))
	}

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		return "", fmt.Errorf("run select list: %w", err)
	}
	result, ok := final.(Model)
	if !ok || result.aborted || !result.chosen {
		return "", ErrAborted
	}
	return result.Selected(), nil
}
