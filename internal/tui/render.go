// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/green/chipsel/internal/definition"
)

// Render returns the form's first frame for a terminal of the given width.
// With open set every field that can open shows its menu.
func Render(def *definition.Definition, opts Options, width int, open bool) string {
	m := NewModel(def, opts)
	m.Attach()
	defer m.Detach()

	if open {
		for _, f := range m.fields {
			f.Widget().ClickSelector()
		}
	}
	m.Update(tea.WindowSizeMsg{Width: width})
	return m.Snapshot()
}
