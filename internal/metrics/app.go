package metrics

import (
	"time"

	"github.com/bizwhiz/bizwhiz/internal/observability"
)

// Metric names. Every emitter is a no-op until observability.InitMetrics
// has run, so CLI commands never touch the exporter.
const (
	SearchesTotal        = "bizwhiz_searches_total"
	SearchDuration       = "bizwhiz_search_duration_ms"
	SearchResults        = "bizwhiz_search_results"
	UpstreamCallsTotal   = "bizwhiz_upstream_calls_total"
	ScrapesTotal         = "bizwhiz_scrapes_total"
	StatusChangesTotal   = "bizwhiz_status_changes_total"
	HealthCheckTotal     = "app_health_check_total"
	HealthCheckDuration  = "app_health_check_duration_ms"
	ServerStartTime      = "app_server_start_time_seconds"
	scrapeOutcomeFound   = "found"
	scrapeOutcomeNone    = "none"
	scrapeOutcomeFailure = "failure"
)

// RecordSearch records one pipeline run.
func RecordSearch(businessType string, success bool, results int, duration time.Duration) {
	sys := observability.TelemetrySystem
	if sys == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}
	labels := map[string]string{"business_type": businessType, "status": status}

	_ = sys.Counter(SearchesTotal, 1, labels)
	_ = sys.Histogram(SearchDuration, duration, labels)
	if success {
		_ = sys.Gauge(SearchResults, float64(results), map[string]string{"business_type": businessType})
	}
}

// RecordUpstreamCall records one places API call by operation and the
// upstream status ("OK", "ZERO_RESULTS", "http_502", "transport", ...).
func RecordUpstreamCall(operation, status string) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		UpstreamCallsTotal,
		1,
		map[string]string{
			"operation": operation,
			"status":    status,
		},
	)
}

// RecordScrape records one website visit. A failed visit still counts
// here even though the caller only sees an empty email list.
func RecordScrape(emailsFound int, failed bool) {
	if observability.TelemetrySystem == nil {
		return
	}

	outcome := scrapeOutcomeNone
	switch {
	case failed:
		outcome = scrapeOutcomeFailure
	case emailsFound > 0:
		outcome = scrapeOutcomeFound
	}

	_ = observability.TelemetrySystem.Counter(ScrapesTotal, 1, map[string]string{"outcome": outcome})
}

// RecordStatusChange records an outreach status edit.
func RecordStatusChange(status string) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(StatusChangesTotal, 1, map[string]string{"status": status})
}

// RecordHealthCheck records a health check execution.
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	_ = observability.TelemetrySystem.Counter(
		HealthCheckTotal,
		1,
		map[string]string{
			"check":  checkName,
			"status": status,
		},
	)
	_ = observability.TelemetrySystem.Histogram(
		HealthCheckDuration,
		duration,
		map[string]string{"check": checkName},
	)
}

// SetServerStartTime records the server start time (Unix timestamp).
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Gauge(ServerStartTime, float64(timestamp), nil)
}
