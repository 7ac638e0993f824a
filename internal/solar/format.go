package solar

import (
	"fmt"
	"time"
)

// NotAvailable is rendered wherever data is unknown.
const NotAvailable = "N/A"

// FormatSigned renders d as "+Mm Ss" or "-Mm Ss", dropping the minutes when
// they are zero. Zero renders as "+0s".
func FormatSigned(d *time.Duration) string {
	if d == nil {
		return NotAvailable
	}
	sign := "+"
	if wholeSeconds(*d) < 0 {
		sign = "-"
	}
	return sign + minutesSeconds(*d)
}

// FormatRelative renders d as "Mm Ss later" or "Mm Ss earlier". Zero renders
// as "same time".
func FormatRelative(d *time.Duration) string {
	if d == nil {
		return NotAvailable
	}
	switch {
	case wholeSeconds(*d) > 0:
		return minutesSeconds(*d) + " later"
	case wholeSeconds(*d) < 0:
		return minutesSeconds(*d) + " earlier"
	default:
		return "same time"
	}
}

func wholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func minutesSeconds(d time.Duration) string {
	secs := wholeSeconds(d)
	if secs < 0 {
		secs = -secs
	}
	minutes, seconds := secs/60, secs%60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// SunriseText describes the sunrise shift, e.g. "1m 0s later".
func (c Comparison) SunriseText() string {
	return FormatRelative(c.SunriseDelta)
}

// SunsetText describes the sunset shift, e.g. "1m 0s later".
func (c Comparison) SunsetText() string {
	return FormatRelative(c.SunsetDelta)
}

// DayLengthText renders the day-length change in signed form.
func (c Comparison) DayLengthText() string {
	return FormatSigned(c.DayLengthDelta)
}

// Summary is the glanceable one-line text: the signed day-length change.
func (c Comparison) Summary() string {
	return c.DayLengthText()
}

// SunriseText renders the local sunrise time as "15:04".
func (o Observation) SunriseText() string {
	if !o.Known() {
		return NotAvailable
	}
	return o.Sunrise.In(o.Location()).Format("15:04")
}

// SunsetText renders the local sunset time as "15:04".
func (o Observation) SunsetText() string {
	if !o.Known() {
		return NotAvailable
	}
	return o.Sunset.In(o.Location()).Format("15:04")
}

// DayLengthText renders the day length as "Xh Ym".
func (o Observation) DayLengthText() string {
	d, ok := o.DayLength()
	if !ok {
		return NotAvailable
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
}
