package metrics

import (
	"time"

	"github.com/wooshiiltd/semrush-mcp/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	ToolCallsTotal        = "app_tool_calls_total"
	UpstreamRequestsTotal = "app_upstream_requests_total"
	CacheLookupsTotal     = "app_cache_lookups_total"
	RateLimitWaitMs       = "app_rate_limit_wait_ms"
)

// RecordToolCall records one tool invocation with its outcome.
func RecordToolCall(tool string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			ToolCallsTotal,
			1,
			map[string]string{
				"tool":   tool,
				"status": status,
			},
		)
	}
}

// RecordUpstreamRequest records one upstream HTTP call by endpoint and
// status class.
func RecordUpstreamRequest(endpoint string, status string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			UpstreamRequestsTotal,
			1,
			map[string]string{
				"endpoint": endpoint,
				"status":   status,
			},
		)
	}
}

// RecordCacheLookup records a response-cache lookup outcome.
func RecordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			CacheLookupsTotal,
			1,
			map[string]string{"outcome": outcome},
		)
	}
}

// RecordRateLimitWait records time spent awaiting rate-limiter admission.
func RecordRateLimitWait(wait time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Histogram(
			RateLimitWaitMs,
			wait,
			nil,
		)
	}
}
