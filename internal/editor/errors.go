package editor

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a save or publish is requested while another is in flight
var ErrBusy = errors.New("another save or publish is in flight")

// ErrTemplateNotLoaded is returned when persisting before the template definition resolved
var ErrTemplateNotLoaded = errors.New("template not loaded")

// StateError reports an operation that the controller's current state does not allow
type StateError struct {
	Op    string
	Phase Phase
	Cause error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s: %v", e.Op, e.Phase, e.Cause)
}

func (e *StateError) Unwrap() error {
	return e.Cause
}

// EditError reports an edit that names an unknown field
type EditError struct {
	Field   string
	Message string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("invalid edit of %s: %s", e.Field, e.Message)
}
