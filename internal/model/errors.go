package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies resolution failures
type ErrorKind string

const (
	InvalidConfiguration           ErrorKind = "InvalidConfiguration"
	InvalidResourceReference       ErrorKind = "InvalidResourceReference"
	UnsupportedRegionForRedundancy ErrorKind = "UnsupportedRegionForRedundancy"
	ConflictingCapabilityRequest   ErrorKind = "ConflictingCapabilityRequest"
	NameDerivationOverflow         ErrorKind = "NameDerivationOverflow"
	MissingRequiredOutput          ErrorKind = "MissingRequiredOutput"
	InvalidDependency              ErrorKind = "InvalidDependency"
	DependencyCycle                ErrorKind = "DependencyCycle"
)

// Sentinels for errors.Is; they match any ResolveError of the same kind.
var (
	ErrInvalidConfiguration           = &ResolveError{Kind: InvalidConfiguration}
	ErrInvalidResourceReference       = &ResolveError{Kind: InvalidResourceReference}
	ErrUnsupportedRegionForRedundancy = &ResolveError{Kind: UnsupportedRegionForRedundancy}
	ErrConflictingCapabilityRequest   = &ResolveError{Kind: ConflictingCapabilityRequest}
	ErrNameDerivationOverflow         = &ResolveError{Kind: NameDerivationOverflow}
	ErrMissingRequiredOutput          = &ResolveError{Kind: MissingRequiredOutput}
	ErrInvalidDependency              = &ResolveError{Kind: InvalidDependency}
	ErrDependencyCycle                = &ResolveError{Kind: DependencyCycle}
)

// ResolveError is returned for every rejected configuration. Field names the
// offending input (or output key, or resource kind).
type ResolveError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

// Errorf builds a ResolveError with a formatted message
func Errorf(kind ErrorKind, field, format string, args ...any) *ResolveError {
	return &ResolveError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ResolveError) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Is matches on kind, and on field when the target names one.
func (e *ResolveError) Is(target error) bool {
	t, ok := target.(*ResolveError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// KindOf extracts the error kind from err
func KindOf(err error) (ErrorKind, bool) {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}
