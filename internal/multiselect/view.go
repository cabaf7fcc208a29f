// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package multiselect

// Slots partitions catalog indices between the menu and the chosen strip.
// Every catalog index appears in exactly one of them.
type Slots struct {
	// Menu holds unselected options in catalog order
	Menu []int
	// Chosen holds selected options in selection order
	Chosen []int
}

// Flags are the visibility switches a renderer needs
type Flags struct {
	ShowPlaceholder bool
	ShowClearAll    bool
	Invalid         bool
	MenuVisible     bool
}

// Frame is everything a renderer may paint, taken from one snapshot
type Frame struct {
	State   State
	Catalog *Catalog
	Slots   Slots
	Flags   Flags
}

// Renderer paints frames. It must not call back into the widget.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(Frame)

// Render implements Renderer
func (f RendererFunc) Render(frame Frame) {
	if f != nil {
		f(frame)
	}
}

type noopRenderer struct{}

func (noopRenderer) Render(Frame) {}

// ComputeSlots places every catalog option in the menu or the chosen slot
func ComputeSlots(c *Catalog, s State) Slots {
	slots := Slots{
		Menu:   make([]int, 0, c.Len()),
		Chosen: make([]int, 0, len(s.Selected)),
	}

	chosen := make(map[string]bool, len(s.Selected))
	for _, v := range s.Selected {
		if i := c.Index(v); i >= 0 && !chosen[v] {
			chosen[v] = true
			slots.Chosen = append(slots.Chosen, i)
		}
	}
	for i, opt := range c.options {
		if !chosen[opt.Value] {
			slots.Menu = append(slots.Menu, i)
		}
	}
	return slots
}

// ComputeFlags derives the visibility switches from a snapshot
func ComputeFlags(s State) Flags {
	return Flags{
		ShowPlaceholder: len(s.Selected) == 0,
		ShowClearAll:    len(s.Selected) > 0 && !s.Disabled,
		Invalid:         s.Invalid(),
		MenuVisible:     s.Open,
	}
}

// Synchronizer turns machine state into frames and hands them to a renderer
type Synchronizer struct {
	catalog  *Catalog
	machine  *Machine
	renderer Renderer
	last     Frame
}

// NewSynchronizer creates a synchronizer; a nil renderer discards frames
func NewSynchronizer(c *Catalog, m *Machine, r Renderer) *Synchronizer {
	if r == nil {
		r = noopRenderer{}
	}
	return &Synchronizer{catalog: c, machine: m, renderer: r}
}

// Frame builds a frame from the machine's current snapshot
func (s *Synchronizer) Frame() Frame {
	state := s.machine.Snapshot()
	return Frame{
		State:   state,
		Catalog: s.catalog,
		Slots:   ComputeSlots(s.catalog, state),
		Flags:   ComputeFlags(state),
	}
}

// Sync renders the current state synchronously
func (s *Synchronizer) Sync() {
	s.last = s.Frame()
	s.renderer.Render(s.last)
}

// Last returns the most recently rendered frame
func (s *Synchronizer) Last() Frame {
	return s.last
}
