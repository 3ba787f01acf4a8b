package clock

import (
	"time"

	"github.com/xmidt-org/timeaux"
)

// Converter expresses instants as seen from other timezones.  The instant itself
// never changes, only its presentation.
type Converter interface {
	// Convert returns t as seen from loc
	Convert(t time.Time, loc *time.Location) timeaux.Result[time.Time]

	// ToUTC returns t as seen from UTC
	ToUTC(t time.Time) timeaux.Result[time.Time]
}

// ZoneConverter is the canonical Converter.  It uses a TimeZoneProvider to resolve UTC.
type ZoneConverter struct {
	zones TimeZoneProvider
}

var _ Converter = (*ZoneConverter)(nil)

// NewConverter creates a ZoneConverter.  If zones is nil, an error wrapping
// timeaux.ErrInvalidArgument is returned.
func NewConverter(zones TimeZoneProvider) (*ZoneConverter, error) {
	if zones == nil {
		return nil, timeaux.InvalidArgument("clock.NewConverter", "TimeZoneProvider cannot be nil")
	}

	return &ZoneConverter{zones: zones}, nil
}

func (zc *ZoneConverter) Convert(t time.Time, loc *time.Location) timeaux.Result[time.Time] {
	if loc == nil {
		return timeaux.Fail[time.Time](timeaux.InvalidArgument("clock.Convert", "location cannot be nil"))
	}

	return timeaux.Succeed(t.In(loc))
}

func (zc *ZoneConverter) ToUTC(t time.Time) timeaux.Result[time.Time] {
	return zc.Convert(t, zc.zones.UTC())
}
