package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/daylight/internal/solar"
)

func TestDoRequestMakesSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only the first attempt fails; a retry would succeed.
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = doRequest(context.Background(), srv.Client(), newCircuitBreaker("test"), req)
	assert.ErrorIs(t, err, solar.ErrTransport)
	assert.ErrorIs(t, err, errServerError)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDoRequestClientErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := doRequest(context.Background(), srv.Client(), newCircuitBreaker("test"), req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDoRequestWithoutClient(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.invalid", nil)
	require.NoError(t, err)

	_, err = doRequest(context.Background(), nil, newCircuitBreaker("test"), req)
	assert.ErrorIs(t, err, solar.ErrTransport)
	assert.ErrorIs(t, err, errNoHTTPClient)
}
