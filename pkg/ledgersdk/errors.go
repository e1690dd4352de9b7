package ledgersdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pennywise-app/pennywise/pkg/httpx"
)

// Error codes shared between the server and this SDK. The server writes them
// in the "error" field of every non-2xx response.
const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeInvalidCredential = "invalid_credentials"
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// ErrSessionExpired is returned by Session methods once the server has
// rejected the access token. The session stays dead until an explicit
// Refresh succeeds.
var ErrSessionExpired = errors.New("ledgersdk: session expired")

// APIError is the wire error shape. It implements error and is used both by
// the server (to write responses) and by this SDK (to surface them).
type APIError struct {
	// StatusCode is the HTTP status for this error. Not serialised.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code, e.g. "validation_error".
	Code string `json:"error"`

	// Message is the human-readable detail.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this error to an HTTP response. Used by the server's
// handlers.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   e.Code,
		"message": e.Message,
	})
}

// WithMessage returns a copy of the error carrying a specific message.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: msg}
}

var (
	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    "the request is malformed or missing required fields",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredential,
		Message:    "invalid email or password",
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "invalid or expired token",
	}

	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "you do not have permission to do that",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "resource not found",
	}

	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "resource already exists",
	}

	ErrServer = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response body into an *APIError. Bodies
// that are not the expected shape still come back as an APIError with the
// raw status attached.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}
