package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingBaseURL is returned by every call when no base URL is
	// configured.
	ErrMissingBaseURL = errors.New("API_BASE is not set; configure it in .env or the environment, e.g. API_BASE=http://localhost:8080")

	// ErrMalformedResponse is returned when a response body is not valid JSON.
	ErrMalformedResponse = errors.New("api response is not valid JSON")

	// ErrContractViolation is returned when a successful response lacks
	// a required field.
	ErrContractViolation = errors.New("unexpected api response")

	// ErrNotFound matches HTTPErrors with status 404.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized matches HTTPErrors with status 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPError is a non-2xx API response.
type HTTPError struct {
	Status int
	// Message is the server-provided message, or "HTTP <status>".
	Message string
	// Body is the raw response body, possibly empty.
	Body []byte
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is lets callers match status classes with errors.Is.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

func newHTTPError(status int, body []byte) *HTTPError {
	message := serverMessage(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &HTTPError{Status: status, Message: message, Body: body}
}

// serverMessage extracts a message from a JSON error body: either a JSON
// string or an object with a "message" or "error" string field.
func serverMessage(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.Error)
}
