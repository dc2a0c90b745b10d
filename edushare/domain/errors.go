package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the services surface, so callers can
// decide presentation without string matching.
type ErrorKind int

const (
	// KindNotFound marks absence of a document, session, or file.
	KindNotFound ErrorKind = iota
	// KindConflict marks a uniqueness violation (slug or email already taken).
	KindConflict
	// KindValidation marks rejected input or a forbidden operation.
	KindValidation
	// KindTransient marks a backend or network failure worth retrying.
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	}
	return "unknown"
}

// Error is the single error type crossing the repository and service
// boundaries. It wraps the underlying cause so errors.Is/As keep working.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error describing the missing entity.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Transient wraps a backend failure, keeping the cause for logging.
func Transient(err error, format string, args ...any) error {
	return &Error{Kind: KindTransient, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, defaulting to KindTransient for errors
// produced outside the domain layer.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindTransient
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindNotFound
}

// IsConflict reports whether err is a KindConflict error.
func IsConflict(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindConflict
}

// IsValidation reports whether err is a KindValidation error.
func IsValidation(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindValidation
}
