package deepinfra

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoToken        = errors.New("API token is required")
	ErrInvalidToken   = errors.New("API token contains characters not allowed in a header value")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNilContext     = errors.New("context cannot be nil")
	ErrNilSource      = errors.New("invalid transcription request")
)

// ErrorDetail is one entry of a field-level validation error returned by the
// API, e.g. {"loc": ["body", "language"], "msg": "invalid", "type": "value_error"}.
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// String renders the entry as "<dot-joined-loc>: <msg>".
func (d ErrorDetail) String() string {
	return fmt.Sprintf("%s: %s", strings.Join(d.Loc, "."), d.Msg)
}

// APIError is a structured error payload decoded from the API. Message holds
// the detail string as returned by the service, or the comma-joined rendering
// of Details when the service returned field-level errors.
type APIError struct {
	StatusCode int
	Message    string
	Details    []ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return &e.APIError }

type RateLimitError struct {
	APIError
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

func (e *RateLimitError) Unwrap() error { return &e.APIError }

type InvalidRequestError struct {
	APIError
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request (status %d): %s", e.StatusCode, e.Message)
}

func (e *InvalidRequestError) Unwrap() error { return &e.APIError }

// FileNotFoundError reports that the local audio file referenced by a
// FileSource does not exist. It is returned before any network activity.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// parseAPIError decodes a DeepInfra error body. The service reports errors as
// {"detail": "<message>"} or {"detail": [{"loc": [...], "msg": ..., "type": ...}, ...]};
// anything else falls back to the raw body as the message. The decoded error
// is classified by status code.
func parseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		apiErr.Message = string(body)
		return classifyStatus(apiErr)
	}

	var simple string
	if err := json.Unmarshal(envelope.Detail, &simple); err == nil {
		apiErr.Message = simple
		return classifyStatus(apiErr)
	}

	var details []ErrorDetail
	if err := json.Unmarshal(envelope.Detail, &details); err == nil {
		apiErr.Details = details
		apiErr.Message = joinDetails(details)
		return classifyStatus(apiErr)
	}

	apiErr.Message = string(body)
	return classifyStatus(apiErr)
}

func joinDetails(details []ErrorDetail) string {
	rendered := make([]string, len(details))
	for i, d := range details {
		rendered[i] = d.String()
	}
	return strings.Join(rendered, ", ")
}

func classifyStatus(apiErr *APIError) error {
	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{APIError: *apiErr}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError: *apiErr}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &InvalidRequestError{APIError: *apiErr}
	default:
		return apiErr
	}
}

func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func IsAuthError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsRateLimitError(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func IsFileNotFound(err error) bool {
	var notFound *FileNotFoundError
	return errors.As(err, &notFound)
}
