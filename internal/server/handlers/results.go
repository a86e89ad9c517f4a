package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	webassets "github.com/bizwhiz/bizwhiz/internal/assets/web"
	"github.com/bizwhiz/bizwhiz/internal/core"
	"github.com/bizwhiz/bizwhiz/internal/core/store"
	apperrors "github.com/bizwhiz/bizwhiz/internal/errors"
	"github.com/bizwhiz/bizwhiz/internal/metrics"
	"github.com/bizwhiz/bizwhiz/internal/observability"
	"github.com/bizwhiz/bizwhiz/internal/output"
)

var resultsPage = template.Must(template.New("results").Parse(webassets.ResultsPage))

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, req core.SearchRequest) ([]core.BusinessRecord, error)
}

// ResultsHandler serves the results page and the results API over one store.
type ResultsHandler struct {
	Store    store.ResultStore
	Searcher Searcher
}

// StatusUpdate is the PUT body for a row's status.
type StatusUpdate struct {
	Status string `json:"status"`
}

// StatusUpdateResponse echoes the stored status with the row's new color.
type StatusUpdateResponse struct {
	Row    int    `json:"row"`
	Status string `json:"status"`
	Color  string `json:"color"`
}

type pageForm struct {
	Zip    string
	Radius string
	Type   string
}

type pageRow struct {
	Index  int
	Number int
	Record core.BusinessRecord
	Known  bool
	Style  template.CSS
}

type pageColumn struct {
	Label string
	Href  string
	Arrow string
}

type pageData struct {
	Form     pageForm
	Error    string
	Columns  []pageColumn
	Rows     []pageRow
	Statuses []string
}

// ListResults returns the saved records as JSON.
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.Load(r.Context())
	if err != nil {
		respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodeStore, err, "failed to load results"))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// SearchAPI runs a search from a JSON SearchRequest.
func (h *ResultsHandler) SearchAPI(w http.ResponseWriter, r *http.Request) {
	var req core.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodeInvalidInput, err, "invalid search request body"))
		return
	}

	records, err := h.runSearch(r.Context(), req)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// UpdateStatus sets one row's status and returns its color.
func (h *ResultsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodeInvalidInput, err, "row must be an integer"))
		return
	}

	var body StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodeInvalidInput, err, "invalid status body"))
		return
	}

	status, err := core.ParseStatus(body.Status)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	if err := h.Store.UpdateStatus(r.Context(), row, status); err != nil {
		respondWithError(w, r, err)
		return
	}

	metrics.RecordStatusChange(string(status))
	observability.Logger().Info("Status updated",
		zap.Int("row", row),
		zap.String("status", string(status)))

	writeJSON(w, http.StatusOK, StatusUpdateResponse{
		Row:    row,
		Status: string(status),
		Color:  core.ColorForStatus(string(status)).Hex(),
	})
}

// Page renders the search form and the saved results.
func (h *ResultsHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pageForm{}, "")
}

// SearchForm runs a search posted from the page, then redirects back to it.
// On failure the page is rendered again with the error and the previous rows.
func (h *ResultsHandler) SearchForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, pageForm{}, "Invalid form submission.")
		return
	}

	form := pageForm{
		Zip:    strings.TrimSpace(r.PostFormValue("zip")),
		Radius: strings.TrimSpace(r.PostFormValue("radius")),
		Type:   strings.TrimSpace(r.PostFormValue("type")),
	}

	radius, err := strconv.ParseFloat(form.Radius, 64)
	if err != nil {
		h.renderPage(w, r, http.StatusBadRequest, form, fmt.Sprintf("Radius must be a number of miles, got %q.", form.Radius))
		return
	}

	_, err = h.runSearch(r.Context(), core.SearchRequest{ZipCode: form.Zip, RadiusMiles: radius, BusinessType: form.Type})
	if err != nil {
		envelope := apperrors.Classify(r.Context(), err)
		h.renderPage(w, r, apperrors.HTTPStatusFromEnvelope(envelope), form, envelope.Message)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ResultsHandler) runSearch(ctx context.Context, req core.SearchRequest) ([]core.BusinessRecord, error) {
	logger := observability.Logger()
	start := time.Now()

	records, err := h.Searcher.Search(ctx, req)
	metrics.RecordSearch(req.BusinessType, err == nil, len(records), time.Since(start))
	if err != nil {
		logger.Error("Search failed",
			zap.String("zip_code", req.ZipCode),
			zap.String("business_type", req.BusinessType),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Search completed",
		zap.String("zip_code", req.ZipCode),
		zap.String("business_type", req.BusinessType),
		zap.Int("results", len(records)),
		zap.Duration("duration", time.Since(start)))
	return records, nil
}

func (h *ResultsHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, form pageForm, message string) {
	records, err := h.Store.Load(r.Context())
	if err != nil {
		observability.Logger().Warn("Failed to load results for page", zap.Error(err))
		if message == "" {
			message = "Saved results could not be loaded."
		}
	}

	query := r.URL.Query()
	column, sortErr := output.ParseSortColumn(query.Get("sort"))
	if sortErr != nil {
		column = output.RowColumn
		if message == "" {
			status = http.StatusBadRequest
			message = sortErr.Error()
		}
	}
	desc := query.Get("order") == "desc"

	data := pageData{
		Form:     form,
		Error:    message,
		Columns:  sortColumns(column, desc),
		Rows:     make([]pageRow, 0, len(records)),
		Statuses: statusLabels(),
	}
	for _, i := range output.SortOrder(records, column, desc) {
		rec := records[i]
		data.Rows = append(data.Rows, pageRow{
			Index:  i,
			Number: i + 1,
			Record: rec,
			Known:  slices.Contains(data.Statuses, rec.Status),
			Style:  template.CSS("background-color: " + core.ColorForStatus(rec.Status).Hex()),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := resultsPage.Execute(w, data); err != nil {
		observability.Logger().Warn("Failed to render results page", zap.Error(err))
	}
}

// sortColumns builds the header links. Clicking the active column flips
// its direction.
func sortColumns(active string, desc bool) []pageColumn {
	labels := append([]string{output.RowColumn}, output.Headers...)
	columns := make([]pageColumn, 0, len(labels))
	for _, label := range labels {
		col := pageColumn{Label: label}
		params := url.Values{}
		if label != output.RowColumn {
			params.Set("sort", strings.ToLower(label))
		}
		if label == active {
			col.Arrow = "▲"
			if desc {
				col.Arrow = "▼"
			} else {
				params.Set("order", "desc")
			}
		}
		col.Href = "/"
		if len(params) > 0 {
			col.Href += "?" + params.Encode()
		}
		columns = append(columns, col)
	}
	return columns
}

func statusLabels() []string {
	statuses := core.AllStatuses()
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, string(s))
	}
	return labels
}
