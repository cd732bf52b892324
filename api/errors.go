package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docsgate/docsgate/auth"
	"github.com/docsgate/docsgate/directory"
)

const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Message: msg})
}

// mapError converts domain failures to the uniform error envelope. Nothing
// internal escapes to the transport layer.
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrCodeInvalid),
		errors.Is(err, auth.ErrCodeExpired),
		errors.Is(err, auth.ErrCodeLockedOut),
		errors.Is(err, auth.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, directory.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, directory.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, directory.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, directory.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrMailDelivery):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "an error occurred, please try again")
	}
}

// decodeJSON reads a bounded JSON body into T, answering 400 itself on
// failure.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, maxSize int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return v, false
	}
	return v, true
}
