// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package multiselect

// ChangeKind identifies which operation changed the selection
type ChangeKind int

const (
	ChangeSelect ChangeKind = iota
	ChangeDeselect
	// ChangePreselect reports the initial selection applied on attach
	ChangePreselect
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSelect:
		return "select"
	case ChangeDeselect:
		return "deselect"
	case ChangePreselect:
		return "preselect"
	default:
		return "unknown"
	}
}

// Change is delivered to observers after every successful select or deselect
type Change struct {
	Kind  ChangeKind
	Value string
	// Values is the full selection after the change, in chip order
	Values []string
}

// Observer receives selection change notifications
type Observer func(Change)

// State is a consistent snapshot of the selection machine
type State struct {
	Selected []string
	Open     bool
	Required bool
	Disabled bool

	AllSelected    bool
	HasNoSelection bool
}

// Invalid reports the soft validation failure: required but empty
func (s State) Invalid() bool {
	return s.Required && s.HasNoSelection
}

// Machine owns which values are chosen and whether the menu is open.
// Invalid operations are silent no-ops; every method reports whether the
// state actually changed.
type Machine struct {
	catalog   *Catalog
	selected  []string
	chosen    map[string]bool
	open      bool
	required  bool
	disabled  bool
	observers []Observer
	quiet     bool
}

// NewMachine creates a closed machine with nothing selected
func NewMachine(catalog *Catalog, required, disabled bool) *Machine {
	return &Machine{
		catalog:  catalog,
		chosen:   make(map[string]bool),
		required: required,
		disabled: disabled,
	}
}

// Observe registers an observer for selection changes
func (m *Machine) Observe(o Observer) {
	if o != nil {
		m.observers = append(m.observers, o)
	}
}

// AllSelected reports whether every catalog option is chosen
func (m *Machine) AllSelected() bool {
	return len(m.selected) == m.catalog.Len()
}

// IsOpen returns whether the menu is open
func (m *Machine) IsOpen() bool {
	return m.open
}

// IsSelected reports whether value is chosen
func (m *Machine) IsSelected(value string) bool {
	return m.chosen[value]
}

// Values returns the selection in chip order
func (m *Machine) Values() []string {
	return append([]string(nil), m.selected...)
}

// Snapshot returns a copy of the current state with derived flags
func (m *Machine) Snapshot() State {
	return State{
		Selected:       m.Values(),
		Open:           m.open,
		Required:       m.required,
		Disabled:       m.disabled,
		AllSelected:    m.AllSelected(),
		HasNoSelection: len(m.selected) == 0,
	}
}

// ToggleOpen flips the menu unless disabled or nothing is left to choose
func (m *Machine) ToggleOpen() bool {
	if m.disabled || m.AllSelected() {
		return false
	}
	m.open = !m.open
	return true
}

// Close closes the menu
func (m *Machine) Close() bool {
	if !m.open {
		return false
	}
	m.open = false
	return true
}

// Select appends value to the selection. Unknown or already chosen values
// are ignored. Choosing the last remaining option closes the menu.
func (m *Machine) Select(value string) bool {
	if m.disabled {
		return false
	}
	return m.add(value)
}

// add is Select without the disabled guard; pre-selection of read-only
// widgets goes through here.
func (m *Machine) add(value string) bool {
	if !m.catalog.Contains(value) || m.chosen[value] {
		return false
	}

	m.selected = append(m.selected, value)
	m.chosen[value] = true
	if m.AllSelected() {
		m.open = false
	}

	m.notify(ChangeSelect, value)
	return true
}

// Deselect removes value, keeping the order of the remaining chips
func (m *Machine) Deselect(value string) bool {
	if m.disabled || !m.chosen[value] {
		return false
	}

	for i, v := range m.selected {
		if v == value {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			break
		}
	}
	delete(m.chosen, value)

	m.notify(ChangeDeselect, value)
	return true
}

// DeselectAll removes every chip left to right, one Deselect per value
func (m *Machine) DeselectAll() bool {
	if m.disabled {
		return false
	}

	changed := false
	for _, v := range m.Values() {
		if m.Deselect(v) {
			changed = true
		}
	}
	return changed
}

func (m *Machine) notify(kind ChangeKind, value string) {
	if m.quiet {
		return
	}
	for _, o := range m.observers {
		o(Change{Kind: kind, Value: value, Values: m.Values()})
	}
}
