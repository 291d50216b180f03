package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	msgInternalError      = "Internal server error"
	msgAuthRequired       = "Authentication required"
	msgAdminRequired      = "Admin privileges required"
	msgInvalidBody        = "Invalid request body"
	msgInvalidCredentials = "Invalid credentials"
	msgNotAuthenticated   = "Not authenticated"
	msgContactNotFound    = "Contact not found"

	maxBodyBytes = 1 << 20
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// writeServiceError maps a service error onto the HTTP taxonomy.
// Unexpected errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var validationErr *direrrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSONError(w, http.StatusBadRequest, validationErr.Message)
	case direrrors.Is(err, direrrors.ErrUnauthenticated):
		writeJSONError(w, http.StatusUnauthorized, msgAuthRequired)
	case direrrors.Is(err, direrrors.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case direrrors.Is(err, direrrors.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, msgAdminRequired)
	case direrrors.Is(err, direrrors.ErrNotFound), direrrors.Is(err, direrrors.ErrUserNotFound):
		writeJSONError(w, http.StatusNotFound, notFoundMessage)
	default:
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeJSONError(w, http.StatusInternalServerError, msgInternalError)
	}
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// decodeRequest fills dst from a JSON body, or from form values through fromForm
// when the request is form encoded. An empty body leaves dst untouched.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, fromForm func(url.Values)) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isFormRequest(r) {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}
		fromForm(r.PostForm)
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// formString returns a pointer to the form value, or nil when the key is absent
func formString(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	v := values.Get(key)
	return &v
}
