package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/actorvote/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong. Details is only set for
// field-level validation failures.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError is one rejected field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// WriteError maps err onto a status code and JSON error body using the
// domain sentinels. Anything unrecognised becomes a 500 with a generic
// message. It is exported so middleware can render errors the same way.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	writeJSON(w, status, body)
}

func errorResponse(err error) (int, ErrorResponse) {
	var (
		fieldErr *validationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, errorBody("request_too_large", "request body too large", nil)
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, errorBody("validation_error", fieldErr.Error(), fieldErr.fields)
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorBody("validation_error", detailMessage(err, domain.ErrValidation), nil)
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorBody("unauthenticated", detailMessage(err, domain.ErrUnauthenticated), nil)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody("forbidden", detailMessage(err, domain.ErrForbidden), nil)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody("not_found", detailMessage(err, domain.ErrNotFound), nil)
	default:
		return http.StatusInternalServerError, errorBody("internal_error", "internal server error", nil)
	}
}

// fail renders err and logs it when it is a server-side failure.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status, _ := errorResponse(err); status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	}
	WriteError(w, r, err)
}

func errorBody(code, message string, details []FieldError) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// detailMessage extracts the human-readable part that follows the sentinel
// in a wrapped error chain:
//
//	"service.ActorService.Create: validation error: name is required" → "name is required"
//
// A bare sentinel yields its own text.
func detailMessage(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}

// writeJSON encodes v with the given status. Encoding errors are ignored:
// the header is already sent and there is nothing useful left to do.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
