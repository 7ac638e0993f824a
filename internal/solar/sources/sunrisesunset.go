package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/daylight/internal/solar"
)

// DefaultSunriseSunsetURL is the public sunrise-sunset.org JSON endpoint.
const DefaultSunriseSunsetURL = "https://api.sunrise-sunset.org/json"

// SunriseSunsetSource implements solar.Source for api.sunrise-sunset.org.
type SunriseSunsetSource struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewSunriseSunsetSource creates a source against baseURL (DefaultSunriseSunsetURL
// when empty). Failed requests are not retried.
func NewSunriseSunsetSource(client *http.Client, baseURL string) *SunriseSunsetSource {
	if baseURL == "" {
		baseURL = DefaultSunriseSunsetURL
	}
	return &SunriseSunsetSource{
		name:    "sunrise-sunset",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("sunrise-sunset"),
	}
}

func (s *SunriseSunsetSource) Name() string {
	return s.name
}

// sunriseSunsetResponse is the envelope. Results is an empty string rather
// than an object when status is not OK.
type sunriseSunsetResponse struct {
	Status  string          `json:"status"`
	Results json.RawMessage `json:"results"`
}

type sunriseSunsetResults struct {
	Sunrise                   string `json:"sunrise"`
	Sunset                    string `json:"sunset"`
	SolarNoon                 string `json:"solar_noon"`
	DayLength                 int    `json:"day_length"`
	CivilTwilightBegin        string `json:"civil_twilight_begin"`
	CivilTwilightEnd          string `json:"civil_twilight_end"`
	NauticalTwilightBegin     string `json:"nautical_twilight_begin"`
	NauticalTwilightEnd       string `json:"nautical_twilight_end"`
	AstronomicalTwilightBegin string `json:"astronomical_twilight_begin"`
	AstronomicalTwilightEnd   string `json:"astronomical_twilight_end"`
}

func (s *SunriseSunsetSource) Fetch(ctx context.Context, loc solar.Location, date string) (solar.SunTimes, error) {
	if err := validCoordinates(loc.Latitude, loc.Longitude); err != nil {
		return solar.SunTimes{}, err
	}
	if _, err := parseDate(date); err != nil {
		return solar.SunTimes{}, err
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("lng", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	values.Set("date", date)
	values.Set("formatted", "0")

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return solar.SunTimes{}, fmt.Errorf("%w: %v", solar.ErrBadRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doRequest(ctx, s.client, s.circuit, req)
	if err != nil {
		return solar.SunTimes{}, err
	}
	defer resp.Body.Close()

	var payload sunriseSunsetResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if resp.StatusCode >= 400 {
			return solar.SunTimes{}, fmt.Errorf("%w: http %d", solar.ErrStatus, resp.StatusCode)
		}
		return solar.SunTimes{}, fmt.Errorf("%w: decode response: %v", solar.ErrTransport, err)
	}

	if payload.Status != "OK" {
		return solar.SunTimes{}, fmt.Errorf("%w: %q", solar.ErrStatus, payload.Status)
	}
	if resp.StatusCode >= 400 {
		return solar.SunTimes{}, fmt.Errorf("%w: http %d", solar.ErrStatus, resp.StatusCode)
	}

	var results sunriseSunsetResults
	if err := json.Unmarshal(payload.Results, &results); err != nil {
		return solar.SunTimes{}, fmt.Errorf("%w: decode results: %v", solar.ErrTimestamp, err)
	}

	sunrise, err := parseInstant(results.Sunrise)
	if err != nil {
		return solar.SunTimes{}, err
	}
	sunset, err := parseInstant(results.Sunset)
	if err != nil {
		return solar.SunTimes{}, err
	}

	return solar.SunTimes{Sunrise: sunrise, Sunset: sunset}, nil
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
}

// parseInstant accepts ISO-8601 timestamps with or without fractional seconds.
func parseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", solar.ErrTimestamp, s)
}
