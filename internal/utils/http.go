package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
)

// maxBodyBytes bounds every decoded request body.
const maxBodyBytes = 1 << 20

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as {"error": "..."}. Storage and unexpected errors
// are logged with detail and reported to the client as "internal error".
func WriteError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	JSONError(w, status, apperr.Message(err))
}

// DecodeJSON parses the JSON body into v. Unknown fields, trailing data and
// oversized bodies are validation errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return apperr.Validation("empty request body")
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("empty request body")
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.Validation("request body too large")
		}
		return apperr.Validation("invalid JSON: %v", err)
	}
	if dec.More() {
		return apperr.Validation("invalid JSON: trailing data")
	}

	return nil
}
