// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package components

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/green/chipsel/internal/multiselect"
	"github.com/green/chipsel/internal/tui/styles"
)

// SelectionChangedMsg is sent after every successful select or deselect
type SelectionChangedMsg struct {
	Field  string
	Kind   multiselect.ChangeKind
	Value  string
	Values []string
}

// ZoneKind identifies what a click landed on
type ZoneKind int

const (
	ZoneNone ZoneKind = iota
	ZoneSelector
	ZoneChipRemove
	ZoneClearAll
	ZoneMenuItem
)

// Zone is a clickable area in widget-relative cells
type Zone struct {
	Kind  ZoneKind
	Value string
	Rect  multiselect.Rect
}

const (
	DefaultWidth = 48
	MinWidth     = 20

	// " ⊗ ▾" to the right of the chips
	controlsWidth = 4
	// border and padding on both sides
	frameWidth = 4

	removeIcon   = "×"
	clearAllIcon = "⊗"
	chevronDown  = "▾"
	chevronUp    = "▴"
)

// MultiSelect renders a multiselect.Widget and turns mouse clicks into
// widget events
type MultiSelect struct {
	name   string
	styles *styles.Styles
	widget *multiselect.Widget

	width int
	x, y  int

	frame   multiselect.Frame
	lines   []string
	zones   []Zone
	pending []multiselect.Change
}

// NewMultiSelect creates the component and the widget it paints
func NewMultiSelect(name string, in multiselect.Input, s *styles.Styles, logger *log.Logger) *MultiSelect {
	m := &MultiSelect{
		name:   name,
		styles: s,
		width:  DefaultWidth,
	}
	m.widget = multiselect.NewWidget(in,
		multiselect.WithRenderer(m),
		multiselect.WithObserver(m.observe),
		multiselect.WithLogger(logger),
	)
	// The initial frame arrives before m.widget is set
	m.layout()
	return m
}

// Name returns the field name
func (m *MultiSelect) Name() string {
	return m.name
}

// Widget returns the underlying widget
func (m *MultiSelect) Widget() *multiselect.Widget {
	return m.widget
}

// SetWidth sets the component width
func (m *MultiSelect) SetWidth(width int) {
	if width < MinWidth {
		width = MinWidth
	}
	m.width = width
	m.layout()
}

// SetOrigin places the component on screen
func (m *MultiSelect) SetOrigin(x, y int) {
	m.x, m.y = x, y
	m.updateBounds()
}

// Height returns the number of lines the component currently occupies
func (m *MultiSelect) Height() int {
	return len(m.lines)
}

// Render implements multiselect.Renderer
func (m *MultiSelect) Render(f multiselect.Frame) {
	m.frame = f
	m.layout()
}

func (m *MultiSelect) observe(c multiselect.Change) {
	m.pending = append(m.pending, c)
}

func (m *MultiSelect) updateBounds() {
	if m.widget == nil {
		return
	}
	m.widget.SetBounds(multiselect.Rect{
		MinX: m.x,
		MinY: m.y,
		MaxX: m.x + m.width,
		MaxY: m.y + len(m.lines),
	})
}

// drain converts queued changes into messages and clears the queue
func (m *MultiSelect) drain() []SelectionChangedMsg {
	msgs := make([]SelectionChangedMsg, 0, len(m.pending))
	for _, c := range m.pending {
		msgs = append(msgs, SelectionChangedMsg{Field: m.name, Kind: c.Kind, Value: c.Value, Values: c.Values})
	}
	m.pending = nil
	return msgs
}

// Flush returns a command delivering queued change notifications in order
func (m *MultiSelect) Flush() tea.Cmd {
	msgs := m.drain()
	if len(msgs) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(msgs))
	for _, msg := range msgs {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Sequence(cmds...)
}

// Update handles mouse input
func (m *MultiSelect) Update(msg tea.Msg) (*MultiSelect, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		if mouse.Button == tea.MouseButtonLeft && mouse.Action == tea.MouseActionPress {
			m.HandleClick(mouse.X-m.x, mouse.Y-m.y)
		}
	}
	return m, m.Flush()
}

// HandleClick dispatches a click at widget-relative cells. It reports
// whether the click hit anything clickable.
func (m *MultiSelect) HandleClick(x, y int) bool {
	z, ok := m.ZoneAt(x, y)
	if !ok {
		return false
	}

	switch z.Kind {
	case ZoneSelector:
		m.widget.ClickSelector()
	case ZoneChipRemove:
		m.widget.ClickChipRemove(z.Value)
	case ZoneClearAll:
		m.widget.ClickClearAll()
	case ZoneMenuItem:
		m.widget.ClickMenuItem(z.Value)
	}
	return true
}

// ZoneAt returns the topmost zone under widget-relative cells
func (m *MultiSelect) ZoneAt(x, y int) (Zone, bool) {
	for i := len(m.zones) - 1; i >= 0; i-- {
		if m.zones[i].Rect.Contains(x, y) {
			return m.zones[i], true
		}
	}
	return Zone{}, false
}

// View renders the component
func (m *MultiSelect) View() string {
	return strings.Join(m.lines, "\n")
}

// row accumulates styled segments while tracking display width
type row struct {
	sb    strings.Builder
	width int
}

func (r *row) add(text string, st lipgloss.Style) {
	r.sb.WriteString(st.Render(text))
	r.width += ansi.StringWidth(text)
}

func (r *row) text(text string) {
	r.sb.WriteString(text)
	r.width += ansi.StringWidth(text)
}

func (r *row) append(other *row) {
	r.sb.WriteString(other.String())
	r.width += other.width
}

func (r *row) pad(to int) {
	if r.width < to {
		r.sb.WriteString(strings.Repeat(" ", to-r.width))
		r.width = to
	}
}

func (r *row) String() string {
	return r.sb.String()
}

func (m *MultiSelect) borderStyle() lipgloss.Style {
	switch {
	case m.frame.State.Disabled:
		return m.styles.Disabled
	case m.frame.Flags.Invalid:
		return m.styles.BorderError
	case m.frame.Flags.MenuVisible:
		return m.styles.BorderOpen
	default:
		return m.styles.Border
	}
}

func (m *MultiSelect) layout() {
	f := m.frame
	if f.Catalog == nil || m.widget == nil {
		return
	}

	s := m.styles
	w := m.width
	chipsWidth := w - frameWidth - controlsWidth
	border := m.borderStyle()
	b := lipgloss.RoundedBorder()

	var lines []string
	var zones []Zone

	if m.widget.Label() != "" {
		var label row
		label.add(ansi.Truncate(m.widget.Label(), w-2, "…"), s.Label)
		if f.State.Required {
			label.add(" *", s.Required)
		}
		lines = append(lines, label.String())
	}

	selectorTop := len(lines)
	lines = append(lines, border.Render(b.TopLeft+strings.Repeat(b.Top, w-2)+b.TopRight))

	rows, chipZones := m.chipRows(chipsWidth)
	for i, r := range rows {
		r.pad(chipsWidth)

		var line row
		line.add(b.Left, border)
		line.text(" ")
		line.append(r)

		if i == 0 {
			line.text(" ")
			if f.Flags.ShowClearAll {
				line.add(clearAllIcon, s.Control)
				zones = append(zones, Zone{
					Kind: ZoneClearAll,
					Rect: cell(2+chipsWidth+1, selectorTop+1),
				})
			} else {
				line.text(" ")
			}
			chevron := chevronDown
			if f.Flags.MenuVisible {
				chevron = chevronUp
			}
			line.add(" "+chevron, s.Control)
		} else {
			line.text(strings.Repeat(" ", controlsWidth))
		}

		line.text(" ")
		line.add(b.Right, border)
		lines = append(lines, line.String())
	}
	for _, z := range chipZones {
		z.Rect.MinX += 2
		z.Rect.MaxX += 2
		z.Rect.MinY += selectorTop + 1
		z.Rect.MaxY += selectorTop + 1
		zones = append(zones, z)
	}

	selector := Zone{
		Kind: ZoneSelector,
		Rect: multiselect.Rect{MinX: 0, MinY: selectorTop, MaxX: w, MaxY: selectorTop + len(rows) + 2},
	}
	zones = append([]Zone{selector}, zones...)

	if f.Flags.MenuVisible {
		lines = append(lines, border.Render(b.MiddleLeft+strings.Repeat(b.Top, w-2)+b.MiddleRight))
		for _, idx := range f.Slots.Menu {
			opt := f.Catalog.At(idx)
			text := ansi.Truncate(opt.Text, w-frameWidth-2, "…")

			var line row
			line.add(b.Left, border)
			line.text(" ")
			line.add(" "+text+" ", s.Chip(opt.Color, opt.Light))
			line.pad(w - 1)
			line.add(b.Right, border)

			zones = append(zones, Zone{
				Kind:  ZoneMenuItem,
				Value: opt.Value,
				Rect:  multiselect.Rect{MinX: 1, MinY: len(lines), MaxX: w - 1, MaxY: len(lines) + 1},
			})
			lines = append(lines, line.String())
		}
	}
	lines = append(lines, border.Render(b.BottomLeft+strings.Repeat(b.Bottom, w-2)+b.BottomRight))

	switch {
	case f.Flags.Invalid:
		help := m.widget.HelpText()
		if help == "" {
			help = "This field is required"
		}
		lines = append(lines, s.HelpError.Render(ansi.Truncate(help, w, "…")))
	case m.widget.HelpText() != "":
		lines = append(lines, s.Help.Render(ansi.Truncate(m.widget.HelpText(), w, "…")))
	}

	m.lines = lines
	m.zones = zones
	m.updateBounds()
}

// chipRows flows the chosen options into rows no wider than avail. Zone
// rectangles are relative to the first chip row.
func (m *MultiSelect) chipRows(avail int) ([]*row, []Zone) {
	f := m.frame
	cur := &row{}
	rows := []*row{cur}
	var zones []Zone

	if f.Flags.ShowPlaceholder {
		cur.add(ansi.Truncate(m.widget.Placeholder(), avail, "…"), m.styles.Placeholder)
		return rows, nil
	}

	removable := !f.State.Disabled
	for _, idx := range f.Slots.Chosen {
		opt := f.Catalog.At(idx)

		extra := 2
		if removable {
			extra += 2
		}
		text := ansi.Truncate(opt.Text, max(avail-extra, 1), "…")
		width := ansi.StringWidth(text) + extra

		if cur.width > 0 {
			if cur.width+1+width > avail {
				cur = &row{}
				rows = append(rows, cur)
			} else {
				cur.text(" ")
			}
		}

		start := cur.width
		chip := " " + text + " "
		if removable {
			chip += removeIcon + " "
		}
		cur.add(chip, m.styles.Chip(opt.Color, opt.Light))

		if removable {
			x := start + width - 2
			zones = append(zones, Zone{
				Kind:  ZoneChipRemove,
				Value: opt.Value,
				Rect:  multiselect.Rect{MinX: x, MinY: len(rows) - 1, MaxX: x + 2, MaxY: len(rows)},
			})
		}
	}

	return rows, zones
}

func cell(x, y int) multiselect.Rect {
	return multiselect.Rect{MinX: x, MinY: y, MaxX: x + 1, MaxY: y + 1}
}
