// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package timeaux

import (
	"fmt"
	"iter"

	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultHashSeed is the initial value of every combined hash code
	DefaultHashSeed int32 = 19

	// DefaultHashMultiplier is the multiplier applied to the running hash code
	// before each item is added
	DefaultHashMultiplier int32 = 31
)

// Hasher can be implemented by values that supply their own hash code to
// ComputeHashCodeForObjects.
type Hasher interface {
	HashCode() int32
}

// recoverHash converts a panic raised by a getHash function into a failed result
func recoverHash(op string, r *Result[int32]) {
	if v := recover(); v != nil {
		cause, ok := v.(error)
		if !ok {
			cause = fmt.Errorf("%v", v)
		}

		*r = Fail[int32](&Error{
			Kind:    ErrInvalidArgument,
			Op:      op,
			Message: "getHash panicked",
			Err:     cause,
		})
	}
}

// combine folds one more item into a running hash code.  Overflow wraps.
func combine(h, multiplier, item int32) int32 {
	return multiplier*h + item
}

// computeHashCode is the parameterized form of ComputeHashCode.
func computeHashCode(op string, items []int32, seed, multiplier int32) Result[int32] {
	switch {
	case items == nil:
		return Fail[int32](InvalidArgument(op, "items cannot be nil"))

	case len(items) == 0:
		return Fail[int32](InvalidArgument(op, "cannot compute hash code of an empty sequence"))
	}

	h := seed
	for _, item := range items {
		h = combine(h, multiplier, item)
	}

	return Succeed(h)
}

// ComputeHashCode combines a sequence of hash codes into a single hash code.
// The items must be non-empty.
func ComputeHashCode(items []int32) Result[int32] {
	return computeHashCode("timeaux.ComputeHashCode", items, DefaultHashSeed, DefaultHashMultiplier)
}

// ComputeHashCodeFunc combines the hash codes of each item, as computed by getHash.
// The items must be non-empty and getHash must not be nil.  If getHash panics, the
// panic is returned as a failure.
func ComputeHashCodeFunc[T any](items []T, getHash func(T) int32) (r Result[int32]) {
	const op = "timeaux.ComputeHashCodeFunc"
	defer recoverHash(op, &r)
	switch {
	case items == nil:
		return Fail[int32](InvalidArgument(op, "items cannot be nil"))

	case getHash == nil:
		return Fail[int32](InvalidArgument(op, "getHash cannot be nil"))

	case len(items) == 0:
		return Fail[int32](InvalidArgument(op, "cannot compute hash code of an empty sequence"))
	}

	h := DefaultHashSeed
	for _, item := range items {
		h = combine(h, DefaultHashMultiplier, getHash(item))
	}

	return Succeed(h)
}

// ComputeHashCodeSeq is like ComputeHashCodeFunc, but works on an arbitrary
// sequence.  The sequence is traversed exactly once.  Panics raised by getHash or
// by the sequence itself are returned as failures.
func ComputeHashCodeSeq[T any](items iter.Seq[T], getHash func(T) int32) (r Result[int32]) {
	const op = "timeaux.ComputeHashCodeSeq"
	defer recoverHash(op, &r)
	switch {
	case items == nil:
		return Fail[int32](InvalidArgument(op, "items cannot be nil"))

	case getHash == nil:
		return Fail[int32](InvalidArgument(op, "getHash cannot be nil"))
	}

	var (
		h     = DefaultHashSeed
		count int
	)

	for item := range items {
		h = combine(h, DefaultHashMultiplier, getHash(item))
		count++
	}

	if count == 0 {
		return Fail[int32](InvalidArgument(op, "cannot compute hash code of an empty sequence"))
	}

	return Succeed(h)
}

// ComputeHashCodeForObjects combines the hash codes of arbitrary values.  Nil
// values are skipped.  At least one non-nil value is required.
func ComputeHashCodeForObjects(items ...any) Result[int32] {
	var hashes []int32
	if items != nil {
		hashes = make([]int32, 0, len(items))
		for _, item := range items {
			if item != nil {
				hashes = append(hashes, HashCodeOf(item))
			}
		}
	}

	return computeHashCode("timeaux.ComputeHashCodeForObjects", hashes, DefaultHashSeed, DefaultHashMultiplier)
}

// HashCodeOf computes a hash code for a single value.  Hasher implementations
// supply their own code, integral values hash to themselves (truncated to 32 bits),
// and everything else is hashed from its formatted representation.
func HashCodeOf(v any) int32 {
	switch x := v.(type) {
	case nil:
		return 0
	case Hasher:
		return x.HashCode()
	case int32:
		return x
	case int:
		return int32(x)
	case int64:
		return int32(x)
	case int16:
		return int32(x)
	case int8:
		return int32(x)
	case uint32:
		return int32(x)
	case uint16:
		return int32(x)
	case uint8:
		return int32(x)
	case bool:
		if x {
			return 1
		}

		return 0
	case string:
		return int32(xxhash.Sum64String(x))
	case []byte:
		return int32(xxhash.Sum64(x))
	default:
		return int32(xxhash.Sum64String(fmt.Sprintf("%T:%#v", v, v)))
	}
}
