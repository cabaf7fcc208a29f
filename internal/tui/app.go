// SPDX-License-Identifier: GPL-3.0-or-later
package tui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/green/chipsel/internal/definition"
	"github.com/green/chipsel/internal/multiselect"
	"github.com/green/chipsel/internal/tui/components"
	"github.com/green/chipsel/internal/tui/styles"
)

// ErrCancelled is returned by Run when the form is closed without submitting
var ErrCancelled = errors.New("selection cancelled")

const (
	leftMargin   = 1
	headerHeight = 2 // title line and a blank line
	maxWidth     = 72
)

// Options configures the TUI
type Options struct {
	Title   string
	Theme   string
	Width   int // field width, 0 = fit the terminal
	Version string
	Logger  *log.Logger
}

// Model is the form hosting one widget per field
type Model struct {
	opts      Options
	styles    *styles.Styles
	keys      *styles.KeyMap
	logger    *log.Logger
	bus       *multiselect.ClickBus
	fields    []*components.MultiSelect
	statusBar *components.StatusBar

	width  int
	height int
	ready  bool

	submitted bool
}

// NewModel creates a form for def. Widgets stay detached until Init or Attach.
func NewModel(def *definition.Definition, opts Options) *Model {
	s := styles.ForTheme(opts.Theme)
	keys := styles.DefaultKeyMap()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}

	m := &Model{
		opts:      opts,
		styles:    s,
		keys:      keys,
		logger:    logger,
		bus:       multiselect.NewClickBus(),
		statusBar: components.NewStatusBar(s, keys),
	}
	for _, f := range def.Fields {
		m.fields = append(m.fields, components.NewMultiSelect(f.Name, f.Input(), s, logger))
	}
	m.layout()
	return m
}

// Attach connects every widget to the form's click bus
func (m *Model) Attach() {
	for _, f := range m.fields {
		f.Widget().Attach(m.bus)
	}
	m.layout()
	m.updateCounts()
}

// Detach releases every widget's click listener
func (m *Model) Detach() {
	for _, f := range m.fields {
		f.Widget().Detach()
	}
}

// Bus returns the form's click bus
func (m *Model) Bus() *multiselect.ClickBus {
	return m.bus
}

// Fields returns the hosted components in display order
func (m *Model) Fields() []*components.MultiSelect {
	return m.fields
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.Attach()

	// Deliver the pre-selection notifications
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for _, f := range m.fields {
		cmds = append(cmds, f.Flush())
	}
	return tea.Batch(cmds...)
}

// Validate returns the joined errors of every invalid field
func (m *Model) Validate() error {
	var errs []error
	for _, f := range m.fields {
		if err := f.Widget().Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.statusBar.SetWidth(msg.Width)
		m.layout()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Submit):
			if err := m.Validate(); err != nil {
				m.logger.Printf("submit blocked: %v", err)
				m.statusBar.SetMessage(m.styles.Error.Render(firstLine(err)), 5*time.Second)
				return m, nil
			}
			m.submitted = true
			m.Detach()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			m.Detach()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.statusBar.ToggleFullHelp()
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			cmds = append(cmds, m.handleClick(msg))
		}

	case components.SelectionChangedMsg:
		m.logger.Printf("%s: %s %q -> %v", msg.Field, msg.Kind, msg.Value, msg.Values)
		m.updateCounts()
	}

	return m, tea.Batch(cmds...)
}

// handleClick publishes the click to every attached widget, then routes it
// to the field under the pointer
func (m *Model) handleClick(msg tea.MouseMsg) tea.Cmd {
	m.bus.Publish(multiselect.Click{X: msg.X, Y: msg.Y})

	var cmds []tea.Cmd
	for i, f := range m.fields {
		if !f.Widget().Bounds().Contains(msg.X, msg.Y) {
			continue
		}
		field, cmd := f.Update(msg)
		m.fields[i] = field
		cmds = append(cmds, cmd)
		break
	}

	m.layout()
	return tea.Batch(cmds...)
}

func (m *Model) fieldWidth() int {
	if m.opts.Width > 0 {
		return m.opts.Width
	}
	if m.width == 0 {
		return components.DefaultWidth
	}
	return min(m.width-2*leftMargin, maxWidth)
}

// layout stacks the fields below the header, one blank line apart
func (m *Model) layout() {
	width := m.fieldWidth()
	y := headerHeight
	for _, f := range m.fields {
		f.SetWidth(width)
		f.SetOrigin(leftMargin, y)
		y += f.Height() + 1
	}
}

func (m *Model) updateCounts() {
	selected := 0
	for _, f := range m.fields {
		selected += len(f.Widget().Values())
	}
	m.statusBar.SetCounts(selected, len(m.fields))
}

// Result returns what the form produced
func (m *Model) Result() Result {
	res := Result{
		Submitted: m.submitted,
		Values:    make(map[string][]string, len(m.fields)),
	}
	for _, f := range m.fields {
		res.Order = append(res.Order, f.Name())
		res.Values[f.Name()] = f.Widget().Values()
	}
	return res
}

func (m *Model) renderHeader() string {
	title := m.opts.Title
	if title == "" {
		title = "chipsel"
	}
	if m.opts.Version != "" {
		title += m.styles.Muted.Render(" " + m.opts.Version)
	}
	return m.styles.Title.Render(title)
}

// Snapshot renders the header and every field without the status bar
func (m *Model) Snapshot() string {
	margin := strings.Repeat(" ", leftMargin)

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")
	for i, f := range m.fields {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		for j, line := range strings.Split(f.View(), "\n") {
			if j > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(margin + line)
		}
	}
	return sb.String()
}

// View implements tea.Model
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := trimTrailingNewlines(m.statusBar.View())
	body := m.Snapshot()

	// Enforce exact height to prevent terminal scrolling
	lines := strings.Split(body, "\n")
	room := m.height - countLines(footer)
	if room < 0 {
		room = 0
	}
	if len(lines) > room {
		lines = lines[:room]
	}
	for len(lines) < room {
		lines = append(lines, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), footer)
}

func trimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return fmt.Sprintf("%s (and more)", msg[:i])
	}
	return msg
}

// Run starts the TUI and returns the submitted selection
func Run(def *definition.Definition, opts Options) (Result, error) {
	m := NewModel(def, opts)
	defer m.Detach()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run form: %w", err)
	}

	res := final.(*Model).Result()
	if !res.Submitted {
		return res, ErrCancelled
	}
	return res, nil
}
