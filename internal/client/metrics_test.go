package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pulseboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePayloads = map[string]string{
	"/stats/overview":      `{"page_views": 12345, "sessions": 678, "events": 9012}`,
	"/stats/timeseries":    `{"series": [{"day": "2026-08-29", "count": 100}, {"day": "2026-08-30", "count": 250}]}`,
	"/stats/top-events":    `{"items": [{"name": "signup", "count": 42}]}`,
	"/stats/top-pages":     `{"items": [{"path": "/pricing", "count": 77}, {"path": "/docs", "count": 31}]}`,
	"/stats/top-referrers": `{"items": [{"referrer": "news.ycombinator.com", "count": 12}]}`,
	"/stats/top-outbound":  `{"items": [{"url": "https://github.com/example", "count": 5}]}`,
	"/stats/recent-events": `{"items": [{"created_at": "2026-08-30T12:00:00Z", "type": "page_view", "path": "/pricing"}]}`,
}

// recordingServer captures every request so tests can assert on headers and
// query strings per endpoint.
type recordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests map[string]*http.Request
}

func newRecordingServer(t *testing.T, overrides map[string]http.HandlerFunc) *recordingServer {
	t.Helper()
	rs := &recordingServer{requests: make(map[string]*http.Request)}

	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests[r.URL.Path] = r.Clone(context.Background())
		rs.mu.Unlock()

		if override, ok := overrides[r.URL.Path]; ok {
			override(w, r)
			return
		}

		payload, ok := samplePayloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) request(path string) *http.Request {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.requests[path]
}

func newTestClient(server *recordingServer) *MetricsClient {
	return NewMetricsClient(models.MetricsConfiguration{
		BaseURL:     server.URL,
		BearerToken: "test-token",
	})
}

func TestFetchDashboardAggregatesAllEndpoints(t *testing.T) {
	server := newRecordingServer(t, nil)
	c := newTestClient(server)

	view, err := c.FetchDashboard(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), view.Overview.PageViews)
	assert.Equal(t, int64(678), view.Overview.Sessions)
	assert.Equal(t, int64(9012), view.Overview.Events)
	require.Len(t, view.Series, 2)
	assert.Equal(t, "2026-08-29", view.Series[0].Day)
	require.Len(t, view.TopEvents, 1)
	assert.Equal(t, "signup", view.TopEvents[0].Name)
	assert.Len(t, view.TopPages, 2)
	assert.Len(t, view.TopReferrers, 1)
	assert.Len(t, view.TopOutbound, 1)
	require.Len(t, view.Recent, 1)
	assert.Equal(t, "page_view", view.Recent[0].Type)
}

func TestFetchDashboardQueryParameters(t *testing.T) {
	server := newRecordingServer(t, nil)
	c := newTestClient(server)

	_, err := c.FetchDashboard(context.Background(), 90)
	require.NoError(t, err)

	overview := server.request("/stats/overview")
	require.NotNil(t, overview)
	assert.Equal(t, "90", overview.URL.Query().Get("days"))

	series := server.request("/stats/timeseries")
	require.NotNil(t, series)
	assert.Equal(t, "90", series.URL.Query().Get("days"))
	assert.Equal(t, "page_view", series.URL.Query().Get("type"))

	for _, path := range []string{"/stats/top-events", "/stats/top-pages", "/stats/top-referrers", "/stats/top-outbound"} {
		r := server.request(path)
		require.NotNil(t, r, path)
		assert.Equal(t, "90", r.URL.Query().Get("days"), path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"), path)
	}

	recent := server.request("/stats/recent-events")
	require.NotNil(t, recent)
	assert.Equal(t, "25", recent.URL.Query().Get("limit"))
	assert.Empty(t, recent.URL.Query().Get("days"))
}

func TestRequestsCarryAuthAndCorrelationHeaders(t *testing.T) {
	server := newRecordingServer(t, nil)
	c := newTestClient(server)

	_, err := c.FetchDashboard(context.Background(), 7)
	require.NoError(t, err)

	for path := range samplePayloads {
		r := server.request(path)
		require.NotNil(t, r, path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"), path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"), path)
	}
}

func TestMissingArraysDecodeAsEmptyLists(t *testing.T) {
	empty := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}
	server := newRecordingServer(t, map[string]http.HandlerFunc{
		"/stats/timeseries":    empty,
		"/stats/top-events":    empty,
		"/stats/top-pages":     empty,
		"/stats/top-referrers": empty,
		"/stats/top-outbound":  empty,
		"/stats/recent-events": empty,
	})
	c := newTestClient(server)

	view, err := c.FetchDashboard(context.Background(), 30)
	require.NoError(t, err)

	assert.NotNil(t, view.Series)
	assert.Empty(t, view.Series)
	assert.NotNil(t, view.TopEvents)
	assert.NotNil(t, view.TopPages)
	assert.NotNil(t, view.TopReferrers)
	assert.NotNil(t, view.TopOutbound)
	assert.NotNil(t, view.Recent)
}

func TestSingleEndpointFailureFailsWholeFetch(t *testing.T) {
	server := newRecordingServer(t, map[string]http.HandlerFunc{
		"/stats/overview": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	c := newTestClient(server)

	view, err := c.FetchDashboard(context.Background(), 30)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "/stats/overview", statusErr.Endpoint)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	// No partial result leaks out.
	assert.Equal(t, models.ViewState{}, view)
}

func TestFetchDashboardNotConfigured(t *testing.T) {
	c := NewMetricsClient(models.MetricsConfiguration{})

	_, err := c.FetchDashboard(context.Background(), 30)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchDashboardHonorsCancellation(t *testing.T) {
	blocked := make(chan struct{})
	server := newRecordingServer(t, map[string]http.HandlerFunc{
		"/stats/overview": func(w http.ResponseWriter, _ *http.Request) {
			<-blocked
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		},
	})
	defer close(blocked)
	c := newTestClient(server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.FetchDashboard(ctx, 30)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("fetch did not return after cancellation")
	}
}
