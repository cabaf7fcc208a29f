// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package multiselect

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// ErrRequired is returned by Validate when a required widget is empty
var ErrRequired = errors.New("a value is required")

// Input is the construction-time configuration of a widget. It is read once.
type Input struct {
	Options     []RawOption
	Disabled    bool
	Required    bool
	Label       string
	Placeholder string
	HelpText    string
	// Selected is a comma-joined list of values to pre-select on Attach
	Selected string
}

// Widget ties the catalog, the selection machine and the view synchronizer
// together and exposes the click events the widget reacts to.
type Widget struct {
	input     Input
	catalog   *Catalog
	machine   *Machine
	sync      *Synchronizer
	renderer  Renderer
	observers []Observer
	logger    *log.Logger

	sub         *Subscription
	bounds      Rect
	preselected bool
}

// WidgetOption configures a Widget
type WidgetOption func(*Widget)

// WithRenderer sets the renderer that paints every frame
func WithRenderer(r Renderer) WidgetOption {
	return func(w *Widget) {
		w.renderer = r
	}
}

// WithObserver registers a selection change observer
func WithObserver(o Observer) WidgetOption {
	return func(w *Widget) {
		if o != nil {
			w.observers = append(w.observers, o)
		}
	}
}

// WithLogger sets a debug logger; the default discards output
func WithLogger(l *log.Logger) WidgetOption {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWidget builds a detached widget and renders its initial frame
func NewWidget(in Input, opts ...WidgetOption) *Widget {
	w := &Widget{
		input:  in,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.catalog = LoadCatalog(in.Options, in.Disabled)
	if !in.Disabled {
		for _, r := range in.Options {
			if opt, ok := w.catalog.Get(r.Value); ok && opt.Fallback && strings.TrimSpace(r.Color) != "" {
				w.logger.Printf("multiselect %q: color %q for %q replaced by %s", in.Label, r.Color, r.Value, FallbackColor)
			}
		}
	}

	w.machine = NewMachine(w.catalog, in.Required, in.Disabled)
	w.sync = NewSynchronizer(w.catalog, w.machine, w.renderer)

	// Render first so observers always see a painted widget
	w.machine.Observe(func(Change) { w.sync.Sync() })
	for _, o := range w.observers {
		w.machine.Observe(o)
	}

	w.sync.Sync()
	return w
}

// ParseSelected splits a comma-joined value list, trimming blanks. Because
// of the trimming an option whose value has leading or trailing spaces can
// never be pre-selected.
func ParseSelected(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Attach registers the click-outside listener on bus and applies the
// pre-selection. It must be paired with Detach.
func (w *Widget) Attach(bus *ClickBus) {
	if w.sub.Active() {
		return
	}
	w.sub = bus.Subscribe(w.onClick)

	if !w.preselected {
		w.preselected = true
		w.machine.quiet = true
		added := 0
		for _, v := range ParseSelected(w.input.Selected) {
			if w.machine.add(v) {
				added++
			} else {
				w.logger.Printf("multiselect %q: pre-selected value %q dropped", w.input.Label, v)
			}
		}
		w.machine.quiet = false

		// One notification for the whole initial selection; it also syncs
		if added > 0 {
			w.machine.notify(ChangePreselect, "")
			return
		}
	}

	w.sync.Sync()
}

// Detach releases the click-outside listener
func (w *Widget) Detach() {
	w.sub.Cancel()
	w.sub = nil
}

// Attached reports whether the widget holds a click listener
func (w *Widget) Attached() bool {
	return w.sub.Active()
}

func (w *Widget) onClick(c Click) {
	if w.bounds.Contains(c.X, c.Y) {
		return
	}
	w.ClickOutside()
}

// SetBounds records where the widget currently sits on screen
func (w *Widget) SetBounds(r Rect) {
	w.bounds = r
}

// Bounds returns the last recorded screen rectangle
func (w *Widget) Bounds() Rect {
	return w.bounds
}

// ClickSelector toggles the menu
func (w *Widget) ClickSelector() {
	if w.machine.ToggleOpen() {
		w.sync.Sync()
	}
}

// ClickMenuItem selects value
func (w *Widget) ClickMenuItem(value string) {
	if !w.machine.Select(value) {
		w.logger.Printf("multiselect %q: select %q ignored", w.input.Label, value)
	}
}

// ClickChipRemove deselects value
func (w *Widget) ClickChipRemove(value string) {
	if !w.machine.Deselect(value) {
		w.logger.Printf("multiselect %q: deselect %q ignored", w.input.Label, value)
	}
}

// ClickClearAll deselects every chip
func (w *Widget) ClickClearAll() {
	w.machine.DeselectAll()
}

// ClickOutside closes the menu
func (w *Widget) ClickOutside() {
	if w.machine.Close() {
		w.sync.Sync()
	}
}

// Label returns the widget label
func (w *Widget) Label() string {
	return w.input.Label
}

// Placeholder returns the text shown while nothing is selected
func (w *Widget) Placeholder() string {
	return w.input.Placeholder
}

// HelpText returns the help line
func (w *Widget) HelpText() string {
	return w.input.HelpText
}

// Catalog returns the widget's options
func (w *Widget) Catalog() *Catalog {
	return w.catalog
}

// State returns a snapshot of the selection state
func (w *Widget) State() State {
	return w.machine.Snapshot()
}

// Values returns the selected values in chip order
func (w *Widget) Values() []string {
	return w.machine.Values()
}

// Frame returns the last rendered frame
func (w *Widget) Frame() Frame {
	return w.sync.Last()
}

// Validate returns ErrRequired when the widget is required but empty
func (w *Widget) Validate() error {
	if w.machine.Snapshot().Invalid() {
		if w.input.Label != "" {
			return fmt.Errorf("%s: %w", w.input.Label, ErrRequired)
		}
		return ErrRequired
	}
	return nil
}
