package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure returned by the key manager wraps exactly one.
var (
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrEnvironmentUnavailable = errors.New("environment unavailable")
	ErrExternalProcess        = errors.New("external process failed")
	ErrIOFailed               = errors.New("i/o failed")
)

var (
	ErrKeyExists           = fmt.Errorf("%w: key already exists", ErrPreconditionFailed)
	ErrKeyNotFound         = fmt.Errorf("%w: key not found", ErrPreconditionFailed)
	ErrInvalidKeyName      = fmt.Errorf("%w: invalid key name", ErrPreconditionFailed)
	ErrDirectoryUnreadable = fmt.Errorf("%w: key directory unreadable", ErrIOFailed)
)

// PartialStateError reports a failure that happened after earlier steps of
// the same operation already changed external state. Those changes are left
// in place; Retained lists what remains (files on disk, or a note about the
// agent).
type PartialStateError struct {
	Op       string
	Step     string
	Retained []string
	Err      error
}

func (e *PartialStateError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %v", e.Op, e.Step, e.Err)
	if len(e.Retained) > 0 {
		sb.WriteString(" (left in place: ")
		sb.WriteString(strings.Join(e.Retained, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *PartialStateError) Unwrap() error { return e.Err }
