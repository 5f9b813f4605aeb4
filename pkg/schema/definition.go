package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a schema.
type Document struct {
	Entity     string          `yaml:"entity"`
	Properties []PropertyDef   `yaml:"properties"`
	States     *StateMatrixDef `yaml:"states,omitempty"`
}

// PropertyDef declares one property and the rules applied to it.
type PropertyDef struct {
	Name  string    `yaml:"name"`
	Label string    `yaml:"label,omitempty"`
	Kind  Kind      `yaml:"kind,omitempty"` // "", "integer", "float", "decimal", "time"
	Rules []RuleDef `yaml:"rules,omitempty"`
}

// RuleDef declares one rule. Rule parameters (min, max, pattern, ...) sit
// next to the type and are collected into Params.
type RuleDef struct {
	Type             string         `yaml:"type"`
	Message          string         `yaml:"message,omitempty"`
	DisableOnCorrupt bool           `yaml:"disable_on_corrupt,omitempty"`
	Params           map[string]any `yaml:",inline"`
}

// StateMatrixDef declares which properties each state requires or forbids.
type StateMatrixDef struct {
	Property   string   `yaml:"property"`
	HideState  bool     `yaml:"hide_state,omitempty"`
	Properties []string `yaml:"properties"`
	Rows       Rows     `yaml:"rows"`
}

// Row is the requirement row of one state, one entry per tracked property.
type Row struct {
	State        string
	Requirements []string
}

// Rows keeps the states in the order they appear in the document.
type Rows []Row

// UnmarshalYAML decodes a mapping of state name to requirement list.
func (r *Rows) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rows must be a mapping of state to requirements", node.Line)
	}
	rows := make(Rows, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var row Row
		if err := node.Content[i].Decode(&row.State); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&row.Requirements); err != nil {
			return fmt.Errorf("state %q: %w", row.State, err)
		}
		rows = append(rows, row)
	}
	*r = rows
	return nil
}
