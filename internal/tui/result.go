// SPDX-License-Identifier: GPL-3.0-or-later
// Copyright (C) 2026 Anthony Green <green@redhat.com>
package tui

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result is what the form produced
type Result struct {
	Submitted bool
	Values    map[string][]string
	Order     []string // field names in display order
}

// WriteText writes one name=v1,v2 line per field
func (r Result) WriteText(w io.Writer) error {
	for _, name := range r.Order {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, strings.Join(r.Values[name], ",")); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML writes a mapping from field name to values, in display order
func (r Result) WriteYAML(w io.Writer) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.Order {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range r.Values[name] {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			seq,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}
