package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetHTTPErrorResponder(t *testing.T) {
	t.Cleanup(func() { SetHTTPErrorResponder(nil) })

	var seen error
	SetHTTPErrorResponder(func(w http.ResponseWriter, r *http.Request, err error) {
		seen = err
		w.WriteHeader(http.StatusTeapot)
	})

	h := &ResultsHandler{}
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, httptest.NewRequest(http.MethodPut, "/api/results/x/status", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Error(t, seen)

	SetHTTPErrorResponder(nil)
	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, httptest.NewRequest(http.MethodPut, "/api/results/x/status", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_INPUT")
}
