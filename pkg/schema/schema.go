package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jhn78/framework/pkg/logger"
	"github.com/jhn78/framework/pkg/statecheck"
	"github.com/jhn78/framework/pkg/validator"
)

// Record is a decoded entity: property name to value.
type Record = map[string]any

// Schema is a compiled schema document. It is read-only and safe for
// concurrent use.
type Schema struct {
	entity     string
	properties []property
	labels     map[string]string
	matrix     *statecheck.Validator[Record, string]
	stateProp  string
}

type property struct {
	name        string
	label       string
	kind        Kind
	constraints []validator.Constraint
}

// Description is the help text of one property.
type Description struct {
	Name         string
	Label        string
	Requirements []string
	States       []StateRequirement
}

// StateRequirement is what one state demands from a property.
type StateRequirement struct {
	State       string
	Requirement statecheck.Requirement
}

type options struct {
	logger *slog.Logger
}

// Option configures Parse and Load.
type Option func(*options)

// WithLogger sets the logger used while compiling schemas.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load reads and compiles the schema file at path.
func Load(path string, opts ...Option) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingSchema, err)
	}
	o := newOptions(opts)
	s, err := compile(data, o)
	if err != nil {
		o.logger.Error("schema rejected", logger.File(path), logger.Error(err))
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Info("schema loaded", logger.File(path), logger.Entity(s.entity))
	return s, nil
}

// MustLoad is like Load but panics on failure.
func MustLoad(path string, opts ...Option) *Schema {
	s, err := Load(path, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load schema: %v", err))
	}
	return s
}

// Parse compiles a schema document.
func Parse(data []byte, opts ...Option) (*Schema, error) {
	return compile(data, newOptions(opts))
}

// Compile turns an already decoded document into a Schema.
func Compile(doc Document, opts ...Option) (*Schema, error) {
	return build(doc, newOptions(opts).logger)
}

func compile(data []byte, o options) (*Schema, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return build(doc, o.logger)
}

func build(doc Document, log *slog.Logger) (*Schema, error) {
	if doc.Entity == "" {
		return nil, fmt.Errorf("%w: entity name is required", ErrInvalidSchema)
	}
	log = log.With(logger.Component("schema"), logger.Entity(doc.Entity))

	s := &Schema{
		entity: doc.Entity,
		labels: make(map[string]string, len(doc.Properties)),
	}
	for i, def := range doc.Properties {
		p, err := buildProperty(def)
		if err != nil {
			return nil, fmt.Errorf("%w: property[%d] %q: %w", ErrInvalidSchema, i, def.Name, err)
		}
		if _, dup := s.labels[p.name]; dup {
			return nil, fmt.Errorf("%w: duplicate property %q", ErrInvalidSchema, p.name)
		}
		s.labels[p.name] = p.label
		s.properties = append(s.properties, p)
		for _, r := range def.Rules {
			log.Debug("rule compiled", logger.Property(p.name), logger.Rule(r.Type))
		}
	}

	if doc.States != nil {
		if err := s.buildMatrix(*doc.States); err != nil {
			return nil, fmt.Errorf("%w: states: %w", ErrInvalidSchema, err)
		}
		log.Debug("state matrix compiled",
			logger.Property(s.stateProp),
			logger.Count(len(doc.States.Rows)),
		)
	}
	return s, nil
}

func buildProperty(def PropertyDef) (property, error) {
	if def.Name == "" {
		return property{}, errors.New("name is required")
	}
	if !def.Kind.valid() {
		return property{}, fmt.Errorf("unknown kind %q", def.Kind)
	}
	p := property{
		name:  def.Name,
		label: def.Label,
		kind:  def.Kind,
	}
	if p.label == "" {
		p.label = def.Name
	}
	for j, r := range def.Rules {
		c, err := buildConstraint(r)
		if err != nil {
			return property{}, fmt.Errorf("rule[%d] %s: %w", j, r.Type, err)
		}
		p.constraints = append(p.constraints, c)
	}
	return p, nil
}

func (s *Schema) buildMatrix(def StateMatrixDef) error {
	if def.Property == "" {
		return errors.New("state property is required")
	}
	stateProp := def.Property

	props := make([]statecheck.Property[Record], 0, len(def.Properties))
	for _, name := range def.Properties {
		props = append(props, statecheck.Prop(name, s.label(name), func(r Record) any {
			return r[name]
		}))
	}
	m, err := statecheck.New(func(r Record) string { return stateOf(r[stateProp]) }, props...)
	if err != nil {
		return err
	}
	if def.HideState {
		m.HideState()
	}

	for _, row := range def.Rows {
		reqs := make([]statecheck.Requirement, 0, len(row.Requirements))
		for _, name := range row.Requirements {
			req, err := statecheck.ParseRequirement(name)
			if err != nil {
				return fmt.Errorf("state %q: %w", row.State, err)
			}
			reqs = append(reqs, req)
		}
		if err := m.Register(row.State, reqs...); err != nil {
			return err
		}
	}

	s.matrix = m
	s.stateProp = stateProp
	return nil
}

// Entity returns the entity name of the schema.
func (s *Schema) Entity() string {
	return s.entity
}

// StateProperty returns the property holding the record state, or "" when
// the schema has no state matrix.
func (s *Schema) StateProperty() string {
	return s.stateProp
}

// Validate checks record against every property constraint and then
// against the state matrix. Configuration faults (a rule applied to a value
// it cannot inspect) panic; use Check for untrusted records.
func (s *Schema) Validate(record Record, cfg validator.Config) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, p := range s.properties {
		value, err := p.kind.normalize(record[p.name])
		if err != nil {
			errs.Add(kindError(p, err))
			continue
		}
		for _, e := range validator.Check(cfg, p.name, p.label, value, p.constraints...) {
			errs.Add(e)
		}
	}

	if s.matrix == nil {
		return errs
	}
	state := stateOf(record[s.stateProp])
	if !slices.Contains(s.matrix.States(), state) {
		errs.Add(s.unknownState(state))
		return errs
	}
	for _, e := range s.matrix.ValidateAll(record) {
		errs.Add(e)
	}
	return errs
}

// Check is Validate for records of unknown shape: a value the rules cannot
// inspect is reported as an error wrapping ErrIncompatibleRecord.
func (s *Schema) Check(record Record, cfg validator.Config) (errs validator.ValidationErrors, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !(errors.Is(perr, validator.ErrUnsupportedValue) || errors.Is(perr, validator.ErrCoercion)) {
				panic(r)
			}
			errs, err = nil, fmt.Errorf("%w: %w", ErrIncompatibleRecord, perr)
		}
	}()
	return s.Validate(record, cfg), nil
}

// Describe returns the requirement texts of every property, followed by the
// properties only tracked by the state matrix.
func (s *Schema) Describe() []Description {
	out := make([]Description, 0, len(s.properties))
	seen := make(map[string]bool, len(s.properties))
	for _, p := range s.properties {
		d := Description{Name: p.name, Label: p.label}
		for _, c := range p.constraints {
			d.Requirements = append(d.Requirements, c.Requirement())
		}
		d.States = s.stateRequirements(p.name)
		out = append(out, d)
		seen[p.name] = true
	}
	if s.matrix == nil {
		return out
	}
	for _, p := range s.matrix.Properties() {
		if seen[p.Name] {
			continue
		}
		out = append(out, Description{
			Name:   p.Name,
			Label:  p.Label,
			States: s.stateRequirements(p.Name),
		})
	}
	return out
}

func (s *Schema) stateRequirements(name string) []StateRequirement {
	if s.matrix == nil {
		return nil
	}
	var out []StateRequirement
	tracked := false
	for _, p := range s.matrix.Properties() {
		if p.Name == name {
			tracked = true
			break
		}
	}
	if !tracked {
		return nil
	}
	for _, state := range s.matrix.States() {
		out = append(out, StateRequirement{
			State:       state,
			Requirement: s.matrix.Requirement(state, name),
		})
	}
	return out
}

func (s *Schema) label(name string) string {
	if l, ok := s.labels[name]; ok {
		return l
	}
	return name
}

func (s *Schema) unknownState(state string) validator.ValidationError {
	return validator.ValidationError{
		Field:          s.stateProp,
		Message:        fmt.Sprintf("%s has an unknown state %q", s.label(s.stateProp), state),
		TranslationKey: "validation.state_unknown",
		TranslationValues: map[string]any{
			"field": s.stateProp,
			"state": state,
		},
	}
}

func kindError(p property, err error) validator.ValidationError {
	return validator.ValidationError{
		Field:          p.name,
		Message:        fmt.Sprintf("%s is not a valid %s: %v", p.label, p.kind, err),
		TranslationKey: "validation.kind",
		TranslationValues: map[string]any{
			"field": p.name,
			"kind":  string(p.kind),
		},
	}
}

// stateOf renders a record's state value. A missing state is "".
func stateOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
