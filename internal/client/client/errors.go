package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnavailable means the request could not complete (network failure,
	// refused connection, cancelled or timed-out context).
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the credential is missing, expired or rejected.
	// Callers must tear the session down when they see it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned by Login when email/password are wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrValidation marks input rejected by the backend (400/422).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a 404 response.
	ErrNotFound = errors.New("not found")
	// ErrRequestFailed marks any other unsuccessful response.
	ErrRequestFailed = errors.New("request failed")
)

// APIError is a non-2xx, non-401 response. Message is the backend's detail
// when present, verbatim; otherwise a generic text derived from the status.
// errors.Is matches it against ErrValidation, ErrNotFound or ErrRequestFailed.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrRequestFailed
	}
}

func newAPIError(status int, body []byte) *APIError {
	msg := detailMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed: %d %s", status, http.StatusText(status))
	}
	return &APIError{StatusCode: status, Message: msg}
}

// detailMessage extracts a human-readable message from an error body of the
// form {"detail": "..."} or {"detail": [{"msg": "..."}, ...]}.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
