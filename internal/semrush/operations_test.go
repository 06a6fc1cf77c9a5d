package semrush

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingUpstream records the path and query of the last request.
type capturingUpstream struct {
	server *httptest.Server
	path   string
	query  url.Values
}

func newCapturingUpstream(t *testing.T) *capturingUpstream {
	t.Helper()

	c := &capturingUpstream{}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		c.query = r.URL.Query()
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(c.server.Close)
	return c
}

func (c *capturingUpstream) client(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(Config{
		APIKey:    "test-key",
		BaseURL:   c.server.URL + "/",
		TrendsURL: c.server.URL + "/analytics/ta",
	})
	require.NoError(t, err)
	return client
}

func TestKeywordOverviewSingleDBParameters(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.KeywordOverviewSingleDB(context.Background(), "seo", "us")
	require.NoError(t, err)

	assert.Equal(t, "phrase_this", upstream.query.Get("type"))
	assert.Equal(t, "seo", upstream.query.Get("phrase"))
	assert.Equal(t, "us", upstream.query.Get("database"))
	assert.Equal(t, "Ph,Nq,Cp,Co,Nr,Td,In,Kd", upstream.query.Get("export_columns"))
}

func TestBatchKeywordOverviewJoinsPhrasesWithSemicolons(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.BatchKeywordOverview(context.Background(), []string{"a", "b", "c"}, "uk")
	require.NoError(t, err)

	assert.Equal(t, "phrase_these", upstream.query.Get("type"))
	assert.Equal(t, "a;b;c", upstream.query.Get("phrase"))
	assert.Equal(t, "uk", upstream.query.Get("database"))
}

func TestDatabaseDefaultsToUS(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.DomainOrganicKeywords(context.Background(), "example.com", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "us", upstream.query.Get("database"))
}

func TestDisplayLimitOmittedWhenUnset(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.RelatedKeywords(context.Background(), "seo", "us", nil)
	require.NoError(t, err)

	_, present := upstream.query["display_limit"]
	assert.False(t, present, "display_limit must be absent, not empty")
}

func TestDisplayLimitSentWhenSupplied(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	limit := 25
	_, err := client.RelatedKeywords(context.Background(), "seo", "us", &limit)
	require.NoError(t, err)

	assert.Equal(t, "25", upstream.query.Get("display_limit"))
}

func TestBacklinksOperationsFixTargetType(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.BacklinksOverview(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, "backlinks_overview", upstream.query.Get("type"))
	assert.Equal(t, "example.com", upstream.query.Get("target"))
	assert.Equal(t, "root_domain", upstream.query.Get("target_type"))
}

func TestDomainOverviewOmitsDatabase(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.DomainOverview(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, "domain_ranks", upstream.query.Get("type"))
	_, present := upstream.query["database"]
	assert.False(t, present)
}

func TestTrafficSummaryUsesTrendsEndpoint(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.TrafficSummary(context.Background(), []string{"a.com", "b.com"}, "")
	require.NoError(t, err)

	assert.Equal(t, "/analytics/ta/summary", upstream.path)
	assert.Equal(t, "a.com,b.com", upstream.query.Get("domains"))
	assert.Equal(t, "us", upstream.query.Get("country"))
	assert.Equal(t, "all", upstream.query.Get("date"))
}

func TestTrafficSourcesUsesTrendsEndpoint(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.TrafficSources(context.Background(), "example.com", "de")
	require.NoError(t, err)

	assert.Equal(t, "/analytics/ta/sources", upstream.path)
	assert.Equal(t, "example.com", upstream.query.Get("domain"))
	assert.Equal(t, "de", upstream.query.Get("country"))
	assert.Equal(t, "all", upstream.query.Get("date"))
}

func TestAPIUnitsBalanceCarriesOnlyCredential(t *testing.T) {
	upstream := newCapturingUpstream(t)
	client := upstream.client(t)

	_, err := client.APIUnitsBalance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/users/countapiunits.html", upstream.path)
	assert.Equal(t, "test-key", upstream.query.Get("key"))
	assert.Len(t, upstream.query, 1)
}
