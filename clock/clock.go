// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package clock supplies the current time, timezone lookup, and conversion of
instants between timezones.  Each concern is an interface with a system-backed
implementation, so callers can substitute fixed values where needed.
*/
package clock

import (
	"time"

	"github.com/xmidt-org/timeaux"
)

// DateTimeProvider supplies the current instant.
type DateTimeProvider interface {
	// Now returns the current time in the executing machine's local timezone
	Now() time.Time

	// UTCNow returns the current time in UTC
	UTCNow() time.Time
}

// System is the DateTimeProvider backed by the system clock
type System struct{}

var _ DateTimeProvider = System{}

func (System) Now() time.Time {
	return time.Now()
}

func (System) UTCNow() time.Time {
	return time.Now().UTC()
}

// Fixed is a DateTimeProvider that always reports the same instant.
type Fixed time.Time

var _ DateTimeProvider = Fixed{}

// Now returns this instant in the local timezone
func (f Fixed) Now() time.Time {
	return time.Time(f).Local()
}

// UTCNow returns this instant in UTC
func (f Fixed) UTCNow() time.Time {
	return time.Time(f).UTC()
}

// TimeZoneProvider resolves timezones.
type TimeZoneProvider interface {
	// Local returns the timezone of the executing machine
	Local() *time.Location

	// UTC returns the UTC timezone
	UTC() *time.Location

	// FindByID looks up an IANA timezone, e.g. "Europe/Copenhagen"
	FindByID(id string) timeaux.Result[*time.Location]
}

// SystemZones is the TimeZoneProvider backed by the system's timezone database
type SystemZones struct{}

var _ TimeZoneProvider = SystemZones{}

func (SystemZones) Local() *time.Location {
	return time.Local
}

func (SystemZones) UTC() *time.Location {
	return time.UTC
}

// FindByID uses time.LoadLocation.  Unlike that function, an empty id is rejected
// with timeaux.ErrInvalidArgument rather than mapping to UTC.
func (SystemZones) FindByID(id string) timeaux.Result[*time.Location] {
	const op = "clock.FindByID"
	if len(id) == 0 {
		return timeaux.Fail[*time.Location](timeaux.InvalidArgument(op, "timezone id cannot be empty"))
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return timeaux.Fail[*time.Location](&timeaux.Error{
			Kind:    timeaux.ErrInvalidArgument,
			Op:      op,
			Message: id,
			Err:     err,
		})
	}

	return timeaux.Succeed(loc)
}
