package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhn78/framework/pkg/schema"
)

func newDescribeCmd(a *app) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the requirements of every property in a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.Load(schemaPath, schema.WithLogger(a.log))
			if err != nil {
				return err
			}
			a.describe(s)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Schema file (YAML)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) describe(s *schema.Schema) {
	a.printf("%s\n", s.Entity())
	for _, d := range s.Describe() {
		a.printf("  %s (%s)\n", d.Label, d.Name)
		for _, r := range d.Requirements {
			a.printf("    - %s\n", r)
		}
		if len(d.States) == 0 {
			continue
		}
		states := make([]string, 0, len(d.States))
		for _, st := range d.States {
			states = append(states, st.State+"="+st.Requirement.String())
		}
		a.printf("    states: %s\n", strings.Join(states, ", "))
	}
}

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule types a schema may use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range schema.RuleTypes() {
				a.printf("%s\n", t)
			}
		},
	}
}
