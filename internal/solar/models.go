package solar

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date layout used for cache keys and outbound requests.
const DateLayout = "2006-01-02"

// Location is a place for which sunrise and sunset are observed.
// Locations are owned by the caller; the solar package never mutates them.
type Location struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Latitude  float64   `json:"latitude" validate:"latitude"`
	Longitude float64   `json:"longitude" validate:"longitude"`
	TimeZone  string    `json:"timezone" validate:"required,timezone"`
}

// Key returns a canonical string key for logging and indexing this location.
func (l Location) Key() string {
	return l.ID.String()
}

// zones memoizes time.LoadLocation by identifier.
var zones sync.Map // map[string]*time.Location

// TZ resolves the location's civil timezone, falling back to the process
// local zone when the identifier cannot be loaded.
func (l Location) TZ() *time.Location {
	if l.TimeZone == "" {
		return time.Local
	}
	if tz, ok := zones.Load(l.TimeZone); ok {
		return tz.(*time.Location)
	}
	tz, err := time.LoadLocation(l.TimeZone)
	if err != nil {
		return time.Local
	}
	actual, _ := zones.LoadOrStore(l.TimeZone, tz)
	return actual.(*time.Location)
}

// DateKey returns the location-local calendar date of t as "yyyy-mm-dd".
func DateKey(t time.Time, tz *time.Location) string {
	return t.In(tz).Format(DateLayout)
}

// ParseDate parses a "yyyy-mm-dd" calendar date in tz. The returned instant
// is local noon, which exists on every calendar day regardless of DST shifts.
func ParseDate(s string, tz *time.Location) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, tz), nil
}

// SunTimes is what a Source reports for one location and date. Both
// instants are UTC.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Observation is the sunrise/sunset record for one location on one calendar date.
// Sunrise and Sunset are either both set or both zero.
type Observation struct {
	Date     string    `json:"date"`
	Sunrise  time.Time `json:"sunrise"`
	Sunset   time.Time `json:"sunset"`
	TimeZone string    `json:"timezone"`

	tz *time.Location
}

// NewObservation builds an observation with both instants present.
func NewObservation(date string, sunrise, sunset time.Time, tz *time.Location) Observation {
	if sunrise.IsZero() || sunset.IsZero() {
		return UnknownObservation(date, tz)
	}
	return Observation{
		Date:     date,
		Sunrise:  sunrise.UTC(),
		Sunset:   sunset.UTC(),
		TimeZone: tz.String(),
		tz:       tz,
	}
}

// UnknownObservation builds a degraded observation recording that no data
// is available for date.
func UnknownObservation(date string, tz *time.Location) Observation {
	return Observation{
		Date:     date,
		TimeZone: tz.String(),
		tz:       tz,
	}
}

// Known reports whether the observation carries sunrise and sunset data.
func (o Observation) Known() bool {
	return !o.Sunrise.IsZero() && !o.Sunset.IsZero()
}

// Location returns the timezone the observation is displayed in.
func (o Observation) Location() *time.Location {
	if o.tz == nil {
		return time.UTC
	}
	return o.tz
}

// DayLength returns sunset minus sunrise.
func (o Observation) DayLength() (time.Duration, bool) {
	if !o.Known() {
		return 0, false
	}
	return o.Sunset.Sub(o.Sunrise), true
}

// CacheKey identifies one location on one location-local calendar date.
type CacheKey struct {
	LocationID uuid.UUID
	Date       string
}

// Comparison holds two observations and the signed differences between them.
// A nil delta means at least one side had no data.
type Comparison struct {
	Current        Observation
	Reference      Observation
	SunriseDelta   *time.Duration
	SunsetDelta    *time.Duration
	DayLengthDelta *time.Duration
}
