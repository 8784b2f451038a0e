package backend

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrNotFound means the backend works but holds no document yet
	ErrNotFound = errors.New("no stored document")

	ErrConfigurationMissing = errors.New("storage backend misconfigured")
	ErrRemoteUnavailable    = errors.New("remote backend unavailable")
	ErrLocalIO              = errors.New("local storage failure")
)

// Classify names the failure class of a backend error, for messages shown to the operator
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration missing"
	case errors.Is(err, ErrRemoteUnavailable):
		return "remote unavailable"
	case errors.Is(err, ErrLocalIO):
		return "local I/O failure"
	default:
		return "failed"
	}
}

// Failure tags err with a failure class and records a stack trace. Both class and err stay
// reachable through errors.Is.
func Failure(class error, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err == nil {
		return pkgerrors.WithStack(fmt.Errorf("%w: %s", class, msg))
	}
	return pkgerrors.WithStack(fmt.Errorf("%w: %s: %w", class, msg, err))
}
