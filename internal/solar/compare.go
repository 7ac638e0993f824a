package solar

import (
	"time"

	"cloudeng.io/datetime"
)

// Compare computes the sunrise, sunset and day-length differences between
// current and reference. Sunrise and sunset are compared as civil time of day,
// each in its own observation's zone, so a DST change between the two dates
// does not show up as an hour of drift.
func Compare(current, reference Observation) Comparison {
	c := Comparison{
		Current:   current,
		Reference: reference,
	}
	if !current.Known() || !reference.Known() {
		return c
	}

	c.SunriseDelta = durationPtr(timeOfDay(current.Sunrise, current.Location()) - timeOfDay(reference.Sunrise, reference.Location()))
	c.SunsetDelta = durationPtr(timeOfDay(current.Sunset, current.Location()) - timeOfDay(reference.Sunset, reference.Location()))

	curLen, _ := current.DayLength()
	refLen, _ := reference.DayLength()
	c.DayLengthDelta = durationPtr(curLen - refLen)
	return c
}

// timeOfDay returns the duration since local midnight of t in tz.
func timeOfDay(t time.Time, tz *time.Location) time.Duration {
	return datetime.TimeOfDayFromTime(t.In(tz)).Duration()
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
