// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timeaux

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Unit is the value carried by a Result that has nothing else to report.
type Unit struct{}

// Result is the outcome of an operation: either a value or an error, never both.
// The zero value is a successful Result holding the zero value of T.
//
// Callers must check OK or Err before reading Value.  Reading the value of a
// failed Result is a programming error and panics.
type Result[T any] struct {
	value T
	err   error
}

// Succeed returns a successful Result carrying v.
func Succeed[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result carrying err.  If err is nil, this function
// panics since a failure must have a cause.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("timeaux.Fail: a failed Result requires a non-nil error")
	}

	return Result[T]{err: err}
}

// Of adapts the conventional (value, error) return pair into a Result.
// A non-nil err always produces a failure, and v is discarded.
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}

	return Result[T]{value: v}
}

// OK tests if this Result is a success
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Err returns the error for a failed Result, or nil on success
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the conventional (value, error) pair.  On failure, the zero
// value of T is returned along with the error.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Value returns the successful value.  This method panics if the Result
// is a failure.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(fmt.Sprintf("timeaux.Result.Value called on a failed result: %s", r.err))
	}

	return r.value
}

// String returns a human-readable representation of this Result.
func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Fail(%s)", r.err)
	}

	return fmt.Sprintf("Succeed(%v)", r.value)
}

// Collect combines a sequence of results.  If every result succeeded, the returned
// Result carries each value in order.  Otherwise, the returned Result carries a
// *multierror.Error with every failure, and no values.
func Collect[T any](results ...Result[T]) Result[[]T] {
	var (
		values = make([]T, 0, len(results))
		merr   *multierror.Error
	)

	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
		} else {
			values = append(values, r.value)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return Result[[]T]{err: err}
	}

	return Result[[]T]{value: values}
}
