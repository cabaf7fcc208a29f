// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package definition

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/green/chipsel/internal/multiselect"
	"gopkg.in/yaml.v3"
)

// ErrNoFields is returned when a definition declares nothing to select
var ErrNoFields = errors.New("no fields defined")

// Selected holds pre-selected values. In YAML it may be written either as
// a comma-joined string or as a list.
type Selected string

// UnmarshalYAML accepts a scalar or a sequence of scalars
func (s *Selected) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = Selected(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("failed to decode selected list: %w", err)
		}
		*s = Selected(strings.Join(list, ","))
		return nil
	default:
		return fmt.Errorf("line %d: selected must be a string or a list", value.Line)
	}
}

// Field declares one multi-select widget
type Field struct {
	Name        string                  `yaml:"name"`
	Label       string                  `yaml:"label"`
	Placeholder string                  `yaml:"placeholder,omitempty"`
	Help        string                  `yaml:"help,omitempty"`
	Required    bool                    `yaml:"required,omitempty"`
	Disabled    bool                    `yaml:"disabled,omitempty"`
	Selected    Selected                `yaml:"selected,omitempty"`
	Options     []multiselect.RawOption `yaml:"options"`
}

// Input converts the field to widget construction input
func (f Field) Input() multiselect.Input {
	return multiselect.Input{
		Options:     f.Options,
		Disabled:    f.Disabled,
		Required:    f.Required,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		HelpText:    f.Help,
		Selected:    string(f.Selected),
	}
}

// Definition is a form of one or more fields
type Definition struct {
	Title  string  `yaml:"title,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Load reads a definition from a YAML file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return Parse(data)
}

// Parse decodes and normalizes a YAML definition
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if err := def.Normalize(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Normalize names unnamed fields and rejects duplicate names
func (d *Definition) Normalize() error {
	if len(d.Fields) == 0 {
		return ErrNoFields
	}

	seen := make(map[string]bool, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Name == "" {
			f.Name = fmt.Sprintf("field%d", i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Names returns field names in declaration order
func (d *Definition) Names() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// ParseOption parses the flag form value[:text[:color]]. The text
// defaults to the value.
func ParseOption(s string) (multiselect.RawOption, error) {
	parts := strings.SplitN(s, ":", 3)
	value := strings.TrimSpace(parts[0])
	if value == "" {
		return multiselect.RawOption{}, fmt.Errorf("invalid option %q: empty value", s)
	}

	opt := multiselect.RawOption{Value: value, Text: value}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		opt.Text = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		opt.Color = strings.TrimSpace(parts[2])
	}
	return opt, nil
}

// FromFlags builds a single-field definition from --option style input
func FromFlags(field Field, options []string) (*Definition, error) {
	for _, o := range options {
		opt, err := ParseOption(o)
		if err != nil {
			return nil, err
		}
		field.Options = append(field.Options, opt)
	}
	if len(field.Options) == 0 {
		return nil, ErrNoFields
	}
	if field.Name == "" {
		field.Name = "value"
	}

	def := &Definition{Fields: []Field{field}}
	return def, def.Normalize()
}
