package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/wooshiiltd/semrush-mcp/internal/errors"
	"github.com/wooshiiltd/semrush-mcp/internal/semrush"
	"github.com/wooshiiltd/semrush-mcp/internal/server/handlers"
	"github.com/wooshiiltd/semrush-mcp/internal/tools"
)

func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()

	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	client, err := semrush.NewClient(semrush.Config{
		APIKey:    "test-key",
		BaseURL:   api.URL + "/",
		TrendsURL: api.URL + "/analytics/ta",
	})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	return New("127.0.0.1", 0, tools.NewRegistry(client))
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected error code NOT_FOUND, got %s", body.Error.Code)
	}
}

func TestServerListsTools(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body handlers.ToolListResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode tool list: %v", err)
	}

	if len(body.Tools) != 19 {
		t.Fatalf("expected 19 tools, got %d", len(body.Tools))
	}
	if body.Tools[0].Name != "semrush_domain_overview" {
		t.Fatalf("unexpected first tool: %s", body.Tools[0].Name)
	}
}

func TestServerExecutesTool(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected credential on upstream request, got %q", got)
		}
		_, _ = w.Write([]byte("Domain;Rank\nexample.com;42"))
	})

	body := strings.NewReader(`{"arguments":{"domain":"example.com"}}`)
	req := httptest.NewRequest(http.MethodPost, "/tools/semrush_domain_overview", body)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response handlers.ToolCallResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode tool response: %v", err)
	}
	if response.Result != "Domain;Rank\nexample.com;42" {
		t.Fatalf("unexpected result: %v", response.Result)
	}
}

func TestServerReportsUpstreamStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"Access denied"}}`))
	})

	body := strings.NewReader(`{"arguments":{"domain":"example.com"}}`)
	req := httptest.NewRequest(http.MethodPost, "/tools/semrush_domain_overview", body)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	var response apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response.Error.Code != "FORBIDDEN" {
		t.Fatalf("expected error code FORBIDDEN, got %s", response.Error.Code)
	}
	if response.Error.Message != "Access denied" {
		t.Fatalf("expected upstream message, got %q", response.Error.Message)
	}
}

func TestServerRejectsUnknownTool(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/tools/semrush_nope", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestServerRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/tools/semrush_domain_overview", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var response apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response.Error.Code != "INVALID_INPUT" {
		t.Fatalf("expected error code INVALID_INPUT, got %s", response.Error.Code)
	}
}
