package statecheck

import (
	"errors"
	"fmt"
)

var (
	ErrNilStateFunc      = errors.New("state function cannot be nil")
	ErrInvalidProperty   = errors.New("invalid property: name and getter are required")
	ErrDuplicateProperty = errors.New("property declared twice")
	ErrDuplicateState    = errors.New("state registered twice")
	ErrRowLength         = errors.New("requirement row does not match the declared properties")
)

// ErrUnknownState indicates an entity was found in a state that has no requirement row.
type ErrUnknownState struct {
	StateName string
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("no requirement row registered for state '%s'", e.StateName)
}

func NewErrUnknownState(stateName string) *ErrUnknownState {
	return &ErrUnknownState{StateName: stateName}
}

func IsUnknownStateError(err error) bool {
	var e *ErrUnknownState
	return errors.As(err, &e)
}
