package server

import (
	"net/http"

	apperrors "github.com/bizwhiz/bizwhiz/internal/errors"
)

// HandleError writes err as a JSON error envelope. Router fallbacks and every
// results API handler go through it, so upstream, store, and status errors
// get one status mapping.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}
