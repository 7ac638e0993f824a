package sources

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/daylight/internal/solar"
)

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes a single request through the circuit breaker. Failed
// requests are not retried. Every failure is wrapped with solar.ErrTransport.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (*http.Response, error) {
	resp, err := doRequestWithBreaker(ctx, client, cb, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", solar.ErrTransport, err)
	}
	return resp, nil
}

func doRequestWithBreaker(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			resp.Body.Close()
			return nil, errServerError
		case resp.StatusCode >= 400:
			// Client errors carry a status body for the caller to decode
			// and must not trip the breaker.
			return resp, nil
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// validCoordinates rejects coordinates that cannot be turned into a request.
func validCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: coordinates out of range (lat=%v, lng=%v)", solar.ErrBadRequest, lat, lng)
	}
	return nil
}

// parseDate validates a "yyyy-mm-dd" request date.
func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(solar.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q: %v", solar.ErrBadRequest, date, err)
	}
	return d, nil
}
