package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/appetiteclub/apt"
)

var (
	// ErrNotFound marks operations that target an id the store does not hold.
	ErrNotFound = errors.New("record not found")
	// ErrTransport marks failures reported by the store itself.
	ErrTransport = errors.New("record store failure")
)

// ValidationFailure carries the field errors rejected by the store or by a
// manager before the store was called.
type ValidationFailure struct {
	Collection string
	Errors     apt.ValidationErrors
}

func (e *ValidationFailure) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: validation failed", e.Collection)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Collection, strings.Join(parts, "; "))
}

// NotFound builds an ErrNotFound for a collection and id.
func NotFound(collection string, id int64) error {
	return fmt.Errorf("%s %d: %w", collection, id, ErrNotFound)
}

// Transport wraps a store failure so callers can match ErrTransport.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("cannot %s: %w: %w", op, ErrTransport, err)
}

// Invalid builds a ValidationFailure from field errors, or nil when there are none.
func Invalid(collection string, errs apt.ValidationErrors) error {
	if !errs.HasErrors() {
		return nil
	}
	return &ValidationFailure{Collection: collection, Errors: errs}
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport reports whether err is or wraps ErrTransport.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// AsValidation extracts a ValidationFailure from err.
func AsValidation(err error) (*ValidationFailure, bool) {
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf, true
	}
	return nil, false
}
