package semrush

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(Config{
		APIKey:    "test-key",
		BaseURL:   upstream.URL + "/",
		TrendsURL: upstream.URL + "/analytics/ta",
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestNewClientRejectsNegativeRateLimit(t *testing.T) {
	_, err := NewClient(Config{APIKey: "k", RequestsPerSecond: -1})
	require.Error(t, err)
}

func TestEveryRequestCarriesCredential(t *testing.T) {
	var gotKey atomic.Value
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.URL.Query().Get("key"))
		_, _ = w.Write([]byte("Dn;Rk\nexample.com;42"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.DomainOverviewSingleDB(context.Background(), "example.com", "")
	require.NoError(t, err)
	require.Equal(t, "test-key", gotKey.Load())
}

func TestIdenticalCallsWithinTTLHitCache(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("Ph;Nq\nseo;110000"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	first, err := client.KeywordOverviewSingleDB(context.Background(), "seo", "us")
	require.NoError(t, err)

	second, err := client.KeywordOverviewSingleDB(context.Background(), "seo", "us")
	require.NoError(t, err)

	require.Equal(t, int64(1), calls.Load(), "second call must not touch the network")
	require.Same(t, first, second)
	require.Equal(t, first.Data, second.Data)
}

func TestDistinctArgumentsBypassCache(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.KeywordOverviewSingleDB(context.Background(), "seo", "us")
	require.NoError(t, err)
	_, err = client.KeywordOverviewSingleDB(context.Background(), "seo", "uk")
	require.NoError(t, err)

	require.Equal(t, int64(2), calls.Load())
}

func TestExpiredEntryTriggersFreshFetch(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	client.cache.now = func() time.Time { return now }

	_, err := client.DomainOverview(context.Background(), "example.com")
	require.NoError(t, err)

	now = now.Add(DefaultCacheTTL + time.Second)

	_, err = client.DomainOverview(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())
}

func TestStructuredErrorBodyBecomesAPIError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"Access denied"}}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.DomainOverview(context.Background(), "example.com")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "Access denied", apiErr.Message)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.NotNil(t, apiErr.Payload)
}

func TestConnectionFailureSurfacesAsStatus500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	client, err := NewClient(Config{APIKey: "k", BaseURL: upstream.URL + "/"})
	require.NoError(t, err)

	_, err = client.DomainOverview(context.Background(), "example.com")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
	assert.Nil(t, apiErr.Payload)
}

func TestNonOKBodyWithoutStructuredErrorIsSuccess(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream hiccup</html>"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	envelope, err := client.DomainOverview(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, envelope.StatusCode)
	assert.Equal(t, "<html>upstream hiccup</html>", envelope.Data)

	// The non-2xx envelope was cached like any other success.
	_, err = client.DomainOverview(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestErrorOutcomesAreNeverCached(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"Access denied"}}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.DomainOverview(context.Background(), "example.com")
	require.Error(t, err)
	_, err = client.DomainOverview(context.Background(), "example.com")
	require.Error(t, err)

	require.Equal(t, int64(2), calls.Load(), "failed calls must be retried fresh")
}

func TestErrorMessageFallsBackToStatusLine(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"error":{}}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.DomainOverview(context.Background(), "example.com")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTeapot, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestJSONBodyIsParsedIntoEnvelopeData(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"visits": 1234}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	envelope, err := client.TrafficSources(context.Background(), "example.com", "")
	require.NoError(t, err)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1234), data["visits"])
}
