package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bizwhiz/bizwhiz/internal/observability"
)

func TestEmittersAreNoOpsWithoutTelemetry(t *testing.T) {
	observability.TelemetrySystem = nil

	require.NotPanics(t, func() {
		RecordSearch("restaurant", true, 3, 20*time.Millisecond)
		RecordSearch("restaurant", false, 0, time.Millisecond)
		RecordUpstreamCall("geocode", "OK")
		RecordScrape(2, false)
		RecordScrape(0, true)
		RecordStatusChange("Contacted")
		RecordHealthCheck("store", true, time.Millisecond)
		SetServerStartTime(time.Now().Unix())
		RecordError("NOT_FOUND", 404)
		RecordPanic()
		RecordErrorByEndpoint("/api/search", "UPSTREAM_ERROR")
	})
}
