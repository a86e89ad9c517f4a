package handlers

import (
	"net/http"

	apperrors "github.com/bizwhiz/bizwhiz/internal/errors"
)

// The server package installs its handler here; handlers cannot import it.
var httpErrorResponder = apperrors.RespondWithError

// SetHTTPErrorResponder replaces the function that writes API errors. Nil
// restores the envelope writer from internal/errors.
func SetHTTPErrorResponder(responder func(http.ResponseWriter, *http.Request, error)) {
	if responder == nil {
		responder = apperrors.RespondWithError
	}
	httpErrorResponder = responder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}
