// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package multiselect

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FallbackColor is used for options whose color is missing or invalid, and
// for every option of a disabled widget.
const FallbackColor = "#E5E7EB"

// RawOption is an option as supplied by the caller, before validation
type RawOption struct {
	Value string `yaml:"value"`
	Text  string `yaml:"text"`
	Color string `yaml:"color,omitempty"`
}

// Option is a validated, immutable option descriptor
type Option struct {
	Value string
	Text  string
	Color string

	// Fallback reports whether Color was substituted at load time
	Fallback bool
	// Light reports whether Color is light enough to need dark text on top
	Light bool
}

// Catalog holds the selectable options of one widget in caller order
type Catalog struct {
	options []Option
	index   map[string]int
}

// LoadCatalog validates raw options into a catalog. Invalid colors are
// replaced by FallbackColor; when disabled is set every color is. Later
// duplicates of a value are dropped. Missing values or texts pass through.
func LoadCatalog(raw []RawOption, disabled bool) *Catalog {
	c := &Catalog{
		options: make([]Option, 0, len(raw)),
		index:   make(map[string]int, len(raw)),
	}

	for _, r := range raw {
		if _, dup := c.index[r.Value]; dup {
			continue
		}

		color, ok := normalizeColor(r.Color)
		if disabled || !ok {
			color = FallbackColor
		}

		c.index[r.Value] = len(c.options)
		c.options = append(c.options, Option{
			Value:    r.Value,
			Text:     r.Text,
			Color:    color,
			Fallback: color != strings.TrimSpace(r.Color),
			Light:    isLight(color),
		})
	}

	return c
}

// Len returns the number of options
func (c *Catalog) Len() int {
	return len(c.options)
}

// Contains reports whether value is in the catalog
func (c *Catalog) Contains(value string) bool {
	_, ok := c.index[value]
	return ok
}

// Get returns the option for value
func (c *Catalog) Get(value string) (Option, bool) {
	i, ok := c.index[value]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// Index returns the catalog position of value, or -1
func (c *Catalog) Index(value string) int {
	if i, ok := c.index[value]; ok {
		return i
	}
	return -1
}

// At returns the option at catalog position i
func (c *Catalog) At(i int) Option {
	return c.options[i]
}

// Options returns a copy of all options in catalog order
func (c *Catalog) Options() []Option {
	return append([]Option(nil), c.options...)
}

// normalizeColor accepts the color forms a terminal can paint: #rgb and
// #rrggbb hex, and ANSI palette indices 0-255.
func normalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return "", false
		}
		// colorful.Hex stops at the first bad digit without an error
		if strings.Trim(s[1:], "0123456789abcdefABCDEF") != "" {
			return "", false
		}
		if _, err := colorful.Hex(strings.ToLower(s)); err != nil {
			return "", false
		}
		return s, true
	}

	if strings.Trim(s, "0123456789") != "" {
		return "", false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return s, true
}

// isLight guesses whether a chip background needs dark text. ANSI indices
// are treated as dark except the bright white range.
func isLight(color string) bool {
	if strings.HasPrefix(color, "#") {
		c, err := colorful.Hex(strings.ToLower(color))
		if err != nil {
			return true
		}
		l, _, _ := c.Lab()
		return l > 0.6
	}
	n, _ := strconv.Atoi(color)
	return n == 7 || n == 15 || n >= 250
}
