// Package httpx holds the JSON response helpers and the error-to-status
// mapping shared by the auth gate and the API handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/common"
)

// ErrorResponse is the body of every client-visible failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of the last-resort 500 handler.
type MessageResponse struct {
	Message string `json:"message"`
}

const internalErrorMessage = "internal server error"

// WriteJSON writes data as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError maps err to a status code and writes the matching body.
// Unclassified errors never leak their text.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteInternalError(w)
		return
	}
	WriteJSON(w, status, ErrorResponse{Error: err.Error()})
}

// WriteInternalError writes the generic 500 body.
func WriteInternalError(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, MessageResponse{Message: internalErrorMessage})
}

// StatusFor returns the HTTP status for err. Conflicts and bad credentials
// are reported as 400.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorAuthorizationRequired),
		errors.Is(err, common.ErrorInvalidTokenFormat),
		errors.Is(err, common.ErrorNotAuthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorNotConfigured):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
