// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timeaux

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument indicates that an operation was passed an argument that
	// violates its contract, e.g. a nonpositive interval or a nil handler.  These
	// errors are never worth retrying.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrObjectDisposed is returned by any operation on an object that has been
	// torn down.  The object should not be used again.
	ErrObjectDisposed = errors.New("object disposed")

	// ErrUnderlyingResource indicates that a collaborator, such as a scheduler,
	// failed while allocating or releasing a resource.
	ErrUnderlyingResource = errors.New("underlying resource failure")
)

// Error is a convenient carrier of error information.  It pairs one of this
// package's sentinel kinds with an optional cause, and both can be matched with
// errors.Is and errors.As.
type Error struct {
	// Kind is the sentinel describing the category of this error.  This field is required,
	// and is usually one of ErrInvalidArgument, ErrObjectDisposed, or ErrUnderlyingResource.
	Kind error

	// Op is the optional name of the operation that failed, e.g. "timer.Start".
	Op string

	// Message is the optional message to associate with this error
	Message string

	// Err is the optional cause of this error.
	Err error
}

// Unwrap produces both the Kind and the cause, if present
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}

	return []error{e.Kind}
}

// Error fulfills the error interface.  Op, Message, and the cause are included
// in this text if they are supplied.
func (e *Error) Error() string {
	var o strings.Builder
	if len(e.Op) > 0 {
		o.WriteString(e.Op)
		o.WriteString(": ")
	}

	o.WriteString(e.Kind.Error())
	if len(e.Message) > 0 {
		o.WriteString(": ")
		o.WriteString(e.Message)
	}

	if e.Err != nil {
		o.WriteString(": ")
		o.WriteString(e.Err.Error())
	}

	return o.String()
}

// ErrorFields produces a flattened name/value sequence describing this error.
// The result is suitable for structured loggers.
func (e *Error) ErrorFields() []interface{} {
	nav := make([]interface{}, 0, 8)
	nav = append(nav, "kind", e.Kind.Error())
	if len(e.Op) > 0 {
		nav = append(nav, "op", e.Op)
	}

	if len(e.Message) > 0 {
		nav = append(nav, "message", e.Message)
	}

	if e.Err != nil {
		nav = append(nav, "cause", e.Err.Error())
	}

	return nav
}

// InvalidArgument creates an *Error of kind ErrInvalidArgument
func InvalidArgument(op, message string) error {
	return &Error{
		Kind:    ErrInvalidArgument,
		Op:      op,
		Message: message,
	}
}

// ObjectDisposed creates an *Error of kind ErrObjectDisposed
func ObjectDisposed(op, object string) error {
	return &Error{
		Kind:    ErrObjectDisposed,
		Op:      op,
		Message: object,
	}
}

// UnderlyingResource wraps a collaborator failure in an *Error of kind
// ErrUnderlyingResource.  If cause is nil, this function returns nil.
func UnderlyingResource(op string, cause error) error {
	if cause == nil {
		return nil
	}

	return &Error{
		Kind: ErrUnderlyingResource,
		Op:   op,
		Err:  cause,
	}
}
