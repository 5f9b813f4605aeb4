package statecheck

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/jhn78/framework/pkg/validator"
)

// Requirement is what a state demands from one property.
type Requirement int8

const (
	// Indifferent leaves the property unchecked.
	Indifferent Requirement = iota
	// Required demands a value.
	Required
	// Forbidden demands the absence of a value.
	Forbidden
)

func (r Requirement) String() string {
	switch r {
	case Indifferent:
		return "indifferent"
	case Required:
		return "required"
	case Forbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("Requirement(%d)", int(r))
	}
}

// ParseRequirement accepts the String form of a Requirement.
func ParseRequirement(s string) (Requirement, error) {
	for _, r := range []Requirement{Indifferent, Required, Forbidden} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown requirement %q", s)
}

// Named is implemented by states that provide their own display name.
type Named interface {
	Name() string
}

// Property is a tracked property of entity type E.
type Property[E any] struct {
	Name  string
	Label string
	Get   func(E) any
}

// Prop declares a tracked property. label is used in messages and defaults to name.
func Prop[E any](name, label string, get func(E) any) Property[E] {
	if label == "" {
		label = name
	}
	return Property[E]{Name: name, Label: label, Get: get}
}

// Validator checks that the properties of an entity are consistent with its
// lifecycle state. Each registered state carries one Requirement per
// declared property, in declaration order.
//
// A Validator is built once and is read-only afterwards; register every
// state before sharing it between goroutines.
type Validator[E any, S comparable] struct {
	state     func(E) S
	props     []Property[E]
	index     map[string]int
	rows      map[S][]Requirement
	states    []S
	hideState bool
}

// New creates a validator tracking props, extracting the current state with state.
func New[E any, S comparable](state func(E) S, props ...Property[E]) (*Validator[E, S], error) {
	if state == nil {
		return nil, ErrNilStateFunc
	}

	v := &Validator[E, S]{
		state: state,
		props: make([]Property[E], 0, len(props)),
		index: make(map[string]int, len(props)),
		rows:  make(map[S][]Requirement),
	}
	for i, p := range props {
		if p.Name == "" || p.Get == nil {
			return nil, fmt.Errorf("%w: property[%d] %q", ErrInvalidProperty, i, p.Name)
		}
		if _, ok := v.index[p.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProperty, p.Name)
		}
		if p.Label == "" {
			p.Label = p.Name
		}
		v.index[p.Name] = len(v.props)
		v.props = append(v.props, p)
	}
	return v, nil
}

// MustNew is like New but panics on invalid declarations.
func MustNew[E any, S comparable](state func(E) S, props ...Property[E]) *Validator[E, S] {
	v, err := New(state, props...)
	if err != nil {
		panic(fmt.Errorf("failed to create state validator: %w", err))
	}
	return v
}

// Register adds the requirement row of state. reqs must hold exactly one
// Requirement per declared property.
func (v *Validator[E, S]) Register(state S, reqs ...Requirement) error {
	if len(reqs) != len(v.props) {
		return fmt.Errorf("%w: state '%s' has %d values instead of %d",
			ErrRowLength, stateName(state), len(reqs), len(v.props))
	}
	if _, ok := v.rows[state]; ok {
		return fmt.Errorf("%w: '%s'", ErrDuplicateState, stateName(state))
	}
	v.rows[state] = slices.Clone(reqs)
	v.states = append(v.states, state)
	return nil
}

// Add is Register for schema definitions: a wrong row is a programming
// error and panics.
func (v *Validator[E, S]) Add(state S, reqs ...Requirement) *Validator[E, S] {
	if err := v.Register(state, reqs...); err != nil {
		panic(err)
	}
	return v
}

// HideState leaves the state out of the produced messages.
func (v *Validator[E, S]) HideState() *Validator[E, S] {
	v.hideState = true
	return v
}

// States returns the registered states in registration order.
func (v *Validator[E, S]) States() []S {
	return slices.Clone(v.states)
}

// Properties returns the tracked properties in declaration order.
func (v *Validator[E, S]) Properties() []Property[E] {
	return slices.Clone(v.props)
}

// Requirement returns what state demands from property. Untracked
// properties are Indifferent; an unregistered state panics.
func (v *Validator[E, S]) Requirement(state S, property string) Requirement {
	i, ok := v.index[property]
	if !ok {
		return Indifferent
	}
	return v.row(state)[i]
}

// Validate checks one property of entity against the entity's current
// state. It returns nil for untracked properties.
func (v *Validator[E, S]) Validate(entity E, property string) *validator.ValidationError {
	i, ok := v.index[property]
	if !ok {
		return nil
	}
	state := v.state(entity)
	return v.check(entity, state, v.row(state), i)
}

// ValidateAll checks every tracked property of entity against its current state.
func (v *Validator[E, S]) ValidateAll(entity E) validator.ValidationErrors {
	return v.Preview(entity, v.state(entity))
}

// Preview checks every tracked property of entity as if it were in target,
// e.g. before firing a transition.
func (v *Validator[E, S]) Preview(entity E, target S) validator.ValidationErrors {
	row := v.row(target)
	var errs validator.ValidationErrors
	for i := range v.props {
		errs.AddIf(v.check(entity, target, row, i))
	}
	return errs
}

func (v *Validator[E, S]) row(state S) []Requirement {
	row, ok := v.rows[state]
	if !ok {
		panic(NewErrUnknownState(stateName(state)))
	}
	return row
}

func (v *Validator[E, S]) check(entity E, state S, row []Requirement, i int) *validator.ValidationError {
	req := row[i]
	if req == Indifferent {
		return nil
	}

	p := v.props[i]
	present := !absent(p.Get(entity))
	switch {
	case req == Required && !present:
		return v.failure(p, state, "validation.state_required", "is necessary")
	case req == Forbidden && present:
		return v.failure(p, state, "validation.state_forbidden", "is not allowed")
	default:
		return nil
	}
}

func (v *Validator[E, S]) failure(p Property[E], state S, key, verb string) *validator.ValidationError {
	name := stateName(state)
	msg := fmt.Sprintf("%s %s in state %s", p.Label, verb, name)
	if v.hideState {
		msg = fmt.Sprintf("%s %s", p.Label, verb)
	}
	return &validator.ValidationError{
		Field:          p.Name,
		Message:        msg,
		TranslationKey: key,
		TranslationValues: map[string]any{
			"field": p.Name,
			"state": name,
		},
	}
}

func stateName[S comparable](state S) string {
	if n, ok := any(state).(Named); ok {
		return n.Name()
	}
	return fmt.Sprint(state)
}

// absent reports whether value counts as not set: nil, a nil pointer or
// collection, or an empty string.
func absent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
