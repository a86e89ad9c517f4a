package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthHandlerReturnsHealthyStatus(t *testing.T) {
	manager := NewHealthManager("1.2.3")
	manager.RegisterChecker("store", HealthCheckerFunc(func(context.Context) error { return nil }))

	rec := httptest.NewRecorder()
	manager.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, "1.2.3", resp.Version)
	require.Equal(t, "healthy", resp.Checks["store"])
}

func TestReadinessReturnsServiceUnavailableWhenUnhealthy(t *testing.T) {
	manager := NewHealthManager("1.2.3")
	manager.RegisterChecker("store", HealthCheckerFunc(func(context.Context) error { return errors.New("locked") }))

	rec := httptest.NewRecorder()
	manager.ReadinessHandler(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)
	require.Equal(t, "ready probe failed", resp.Error.Message)
	require.Equal(t, "ready", resp.Error.Details["probe"])

	checks, ok := resp.Error.Details["checks"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "unhealthy", checks["store"])
}

func TestProbesWithoutCheckersAreHealthy(t *testing.T) {
	manager := NewHealthManager("dev")

	for _, h := range []http.HandlerFunc{manager.LivenessHandler, manager.StartupHandler} {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProbeResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, "healthy", resp.Status)
	}
}

func TestDetermineOverallStatusTreatsTimeoutAsDegraded(t *testing.T) {
	manager := NewHealthManager("dev")
	require.Equal(t, "degraded", manager.determineOverallStatus(map[string]string{"store": "timeout"}))
}
