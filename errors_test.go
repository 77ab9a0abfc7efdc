package deepinfra

import (
	"errors"
	"net/http"
	"testing"
)

func TestParseAPIError_SimpleDetail(t *testing.T) {
	err := parseAPIError(http.StatusInternalServerError, []byte(`{"detail": "upstream failed"}`))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "upstream failed" {
		t.Errorf("expected 'upstream failed', got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.StatusCode)
	}
}

func TestParseAPIError_DetailedEntriesKept(t *testing.T) {
	body := []byte(`{"detail": [
		{"loc": ["body","model"], "msg": "field required", "type": "value_error.missing"},
		{"loc": ["body","n"], "msg": "too large", "type": "value_error"}
	]}`)
	err := parseAPIError(http.StatusUnprocessableEntity, body)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if len(apiErr.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(apiErr.Details))
	}
	if apiErr.Details[0].Type != "value_error.missing" {
		t.Errorf("expected type value_error.missing, got %s", apiErr.Details[0].Type)
	}
	want := "body.model: field required, body.n: too large"
	if apiErr.Message != want {
		t.Errorf("expected %q, got %q", want, apiErr.Message)
	}
}

func TestParseAPIError_RawBodyFallback(t *testing.T) {
	err := parseAPIError(http.StatusBadGateway, []byte("bad gateway"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "bad gateway" {
		t.Errorf("expected raw body as message, got %q", apiErr.Message)
	}
}

func TestParseAPIError_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{http.StatusUnauthorized, IsAuthError, "auth"},
		{http.StatusForbidden, IsAuthError, "auth"},
		{http.StatusTooManyRequests, IsRateLimitError, "rate limit"},
	}
	for _, tt := range tests {
		err := parseAPIError(tt.status, []byte(`{"detail": "x"}`))
		if !tt.check(err) {
			t.Errorf("status %d: expected %s error, got %T", tt.status, tt.name, err)
		}
	}

	err := parseAPIError(http.StatusBadRequest, []byte(`{"detail": "x"}`))
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Errorf("status 400: expected InvalidRequestError, got %T", err)
	}
}

func TestErrorDetail_String(t *testing.T) {
	d := ErrorDetail{Loc: []string{"body", "language"}, Msg: "invalid", Type: "value_error"}
	if got := d.String(); got != "body.language: invalid" {
		t.Errorf("expected 'body.language: invalid', got %q", got)
	}
}

func TestFileNotFoundError_Message(t *testing.T) {
	err := &FileNotFoundError{Path: "/tmp/missing.mp3"}
	if err.Error() != "file not found: /tmp/missing.mp3" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !IsFileNotFound(err) {
		t.Error("expected IsFileNotFound to hold")
	}
}
