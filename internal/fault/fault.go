// Package fault defines the error convention shared by every remote-facing
// operation in smartfill. Errors carry a coarse kind for flow decisions (is
// this a transport hiccup or a rejected request?) and a short machine-readable
// reason for logs.
package fault

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindTransport       Kind = "TRANSPORT"
	KindMalformed       Kind = "MALFORMED"
	KindNotFound        Kind = "NOT_FOUND"
	KindServiceRejected Kind = "SERVICE_REJECTED"
)

type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("fault: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("fault: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf returns the kind of err when it is (or wraps) a fault.Error, and
// false otherwise.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if !errors.As(err, &fe) {
		return "", false
	}
	return fe.Kind, true
}
