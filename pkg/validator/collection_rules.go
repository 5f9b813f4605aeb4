package validator

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
)

type noRepeatRule struct{}

// NoRepeat rejects lists containing the same element more than once.
// A nil list is not inspected.
func NoRepeat() Rule {
	return noRepeatRule{}
}

func (noRepeatRule) Check(value any) *Violation {
	list, ok := listOf("NoRepeat", value)
	if !ok {
		return nil
	}

	type group struct {
		element any
		count   int
	}
	var order []*group
	groups := make(map[any]*group, list.Len())
	for i := range list.Len() {
		elem := list.Index(i)
		key := groupKey(elem)
		g, found := groups[key]
		if !found {
			g = &group{element: elem.Interface()}
			groups[key] = g
			order = append(order, g)
		}
		g.count++
	}

	var repeated []string
	for _, g := range order {
		if g.count > 1 {
			repeated = append(repeated, fmt.Sprintf("%v × %d", g.element, g.count))
		}
	}
	if len(repeated) == 0 {
		return nil
	}

	elements := strings.Join(repeated, ", ")
	return violation("validation.no_repeat",
		fmt.Sprintf("%s has some repeated elements: %s", FieldPlaceholder, elements),
		map[string]any{"elements": elements},
	)
}

func (noRepeatRule) Requirement() string {
	return "without repeated elements"
}

// groupKey returns a map key for elem. Non-comparable elements are grouped
// by their printed form.
func groupKey(elem reflect.Value) any {
	if elem.Kind() == reflect.Interface && !elem.IsNil() {
		elem = elem.Elem()
	}
	if elem.Comparable() {
		return elem.Interface()
	}
	return fmt.Sprintf("%T:%v", elem.Interface(), elem.Interface())
}

type countIsRule struct {
	comparison Comparison
	count      int
}

// CountIs compares the number of elements of a list against count.
// A nil list is not inspected, an empty one is.
func CountIs(comparison Comparison, count int) Rule {
	if !comparison.valid() {
		panic(invalidRule("unknown comparison %d", int(comparison)))
	}
	return countIsRule{comparison: comparison, count: count}
}

func (r countIsRule) Check(value any) *Violation {
	list, ok := listOf("CountIs", value)
	if !ok {
		return nil
	}
	if r.comparison.holds(cmp.Compare(list.Len(), r.count)) {
		return nil
	}

	return violation("validation.count_is",
		fmt.Sprintf("%s should have %s %d elements", FieldPlaceholder, r.comparison, r.count),
		map[string]any{"comparison": r.comparison.String(), "count": r.count},
	)
}

func (r countIsRule) Requirement() string {
	return fmt.Sprintf("with %s %d elements", r.comparison, r.count)
}
