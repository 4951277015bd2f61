package apiclient

import (
	"fmt"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/tidwall/gjson"
)

const (
	fallbackMessage    = "An error occurred"
	unreachableMessage = "Unable to reach the server"
	noRefreshMessage   = "No refresh token available"
)

// APIError is the normalised failure of every backend call. Status is the
// HTTP status, or 0 when the server could not be reached.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	cause   error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Unauthorized reports whether the backend rejected the credentials or token.
func (e *APIError) Unauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

var messageKeys = []string{"message", "error", "msg"}

func fromResponse(status int, body []byte) *APIError {
	msg := fallbackMessage
	if gjson.ValidBytes(body) {
		for _, key := range messageKeys {
			if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
				msg = v.String()
				break
			}
		}
	}
	return &APIError{Message: msg, Status: status}
}

func networkError(err error) *APIError {
	return &APIError{Message: unreachableMessage, Status: 0, cause: err}
}

func errNoRefreshToken() *APIError {
	return &APIError{Message: noRefreshMessage, Status: 401, cause: errors.ErrNoRefreshToken}
}
