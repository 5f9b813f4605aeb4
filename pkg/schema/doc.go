// Package schema compiles declarative YAML definitions into validator
// constraints and a state matrix over map-shaped records.
//
// A schema names an entity, lists its properties with the rules each one
// must satisfy and, optionally, a matrix telling which properties every
// state requires or forbids:
//
//	entity: order
//	properties:
//	  - name: email
//	    label: E-mail
//	    rules:
//	      - type: not_null
//	      - type: email
//	        disable_on_corrupt: true
//	  - name: amount
//	    kind: decimal
//	    rules:
//	      - type: number_between
//	        min: "0.01"
//	        max: 1000
//	states:
//	  property: status
//	  properties: [shipped_at]
//	  rows:
//	    draft:   [forbidden]
//	    shipped: [required]
//
// Rule parameters sit next to the rule type. RuleTypes lists the supported
// types. Mistakes in the document (unknown types, bad comparisons, rows of
// the wrong length) are returned by Load and Parse as errors wrapping
// ErrInvalidSchema.
//
// Records are plain maps as produced by a YAML or JSON decoder. The kind of
// a property normalizes its value first (integer, float, decimal, time), so
// numeric and date rules see a single type.
//
//	s := schema.MustLoad("order.yaml", schema.WithLogger(log))
//	errs := s.Validate(record, settings.Validation())
package schema
