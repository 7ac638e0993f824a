package httpapi

import (
	"time"

	"github.com/i474232898/daylight/internal/solar"
)

// observationView is the JSON shape of an observation. Unknown instants are null.
type observationView struct {
	Date          string     `json:"date"`
	TimeZone      string     `json:"timezone"`
	Sunrise       *time.Time `json:"sunrise"`
	Sunset        *time.Time `json:"sunset"`
	DayLengthSecs *int64     `json:"dayLengthSeconds"`
	SunriseLocal  string     `json:"sunriseLocal"`
	SunsetLocal   string     `json:"sunsetLocal"`
	DayLength     string     `json:"dayLength"`
}

func toObservationView(o solar.Observation) observationView {
	v := observationView{
		Date:         o.Date,
		TimeZone:     o.TimeZone,
		SunriseLocal: o.SunriseText(),
		SunsetLocal:  o.SunsetText(),
		DayLength:    o.DayLengthText(),
	}
	if o.Known() {
		rise, set := o.Sunrise, o.Sunset
		v.Sunrise, v.Sunset = &rise, &set
		d, _ := o.DayLength()
		v.DayLengthSecs = seconds(&d)
	}
	return v
}

// comparisonView is the JSON shape of a comparison. Unknown deltas are null.
type comparisonView struct {
	Current   observationView `json:"current"`
	Reference observationView `json:"reference"`

	SunriseDeltaSecs   *int64 `json:"sunriseDeltaSeconds"`
	SunsetDeltaSecs    *int64 `json:"sunsetDeltaSeconds"`
	DayLengthDeltaSecs *int64 `json:"dayLengthDeltaSeconds"`

	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	DayLength string `json:"dayLength"`
	Summary   string `json:"summary"`
}

func toComparisonView(c solar.Comparison) comparisonView {
	return comparisonView{
		Current:            toObservationView(c.Current),
		Reference:          toObservationView(c.Reference),
		SunriseDeltaSecs:   seconds(c.SunriseDelta),
		SunsetDeltaSecs:    seconds(c.SunsetDelta),
		DayLengthDeltaSecs: seconds(c.DayLengthDelta),
		Sunrise:            c.SunriseText(),
		Sunset:             c.SunsetText(),
		DayLength:          c.DayLengthText(),
		Summary:            c.Summary(),
	}
}

func seconds(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	s := int64(*d / time.Second)
	return &s
}
