package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionHandler(t *testing.T) {
	SetVersionInfo("1.2.3", "abcd123", "2026-10-01T12:00:00Z")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })

	rec := httptest.NewRecorder()
	VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp VersionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "bizwhiz", resp.App.Name)
	require.Equal(t, "1.2.3", resp.App.Version)
	require.Equal(t, "abcd123", resp.App.Commit)
	require.NotEmpty(t, resp.Dependencies.Gofulmen)
	require.NotEmpty(t, resp.Dependencies.Crucible)
}
