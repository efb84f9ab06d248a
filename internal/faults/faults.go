package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so the HTTP layer can pick a status
// code without inspecting error strings.
type Kind int

const (
	// NotFound: a referenced entity does not exist.
	NotFound Kind = iota
	// Conflict: the operation is valid but the current state forbids it
	// (duplicate billing period, already paid, last ingredient, ...).
	Conflict
	// Validation: the input itself is malformed (non-positive amount,
	// future date, empty collection, ...). Nothing was written.
	Validation
)

type Fault struct {
	kind Kind
	msg  string
}

func (f *Fault) Error() string { return f.msg }

func (f *Fault) Kind() Kind { return f.kind }

func NotFoundf(format string, args ...interface{}) error {
	return &Fault{kind: NotFound, msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &Fault{kind: Conflict, msg: fmt.Sprintf(format, args...)}
}

func Invalidf(format string, args ...interface{}) error {
	return &Fault{kind: Validation, msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.kind == kind
	}
	return false
}

// HTTPStatus maps a fault to its status code; unknown errors map to 500.
func HTTPStatus(err error) int {
	var f *Fault
	if !errors.As(err, &f) {
		return 500
	}
	switch f.kind {
	case NotFound:
		return 404
	case Conflict:
		return 409
	case Validation:
		return 400
	}
	return 500
}
