package deepinfra

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestChatCompletionRequest_Validate(t *testing.T) {
	req := NewChatCompletionRequest(UserMessage("hi"))
	if err := req.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}

	req.Temperature = 3.5
	if err := req.Validate(); err == nil {
		t.Error("expected error for temperature above 2")
	}

	req = NewChatCompletionRequest(UserMessage("hi"))
	req.N = 5
	if err := req.Validate(); err == nil {
		t.Error("expected error for n above 4")
	}

	req = NewChatCompletionRequest()
	if err := req.Validate(); err == nil {
		t.Error("expected error for empty messages")
	}
}

// Out-of-range values are still sent; validation only runs when asked.
func TestChatCompletion_OutOfRangeValuesPassThrough(t *testing.T) {
	var sent struct {
		Temperature float64 `json:"temperature"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &sent)
		w.Write([]byte(`{"choices":[]}`))
	})

	client := newTestClient(t, "token", handler)

	req := NewChatCompletionRequest(UserMessage("hi"))
	req.Temperature = 9.9

	if _, err := client.ChatCompletion(context.Background(), req); err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if sent.Temperature != 9.9 {
		t.Errorf("expected temperature 9.9 to be sent unchanged, got %v", sent.Temperature)
	}
}

func TestAudioTranscriptionRequest_Validate(t *testing.T) {
	req := NewAudioTranscriptionRequest(AudioFromBytes([]byte("x"), "x.wav"))
	if err := req.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}

	temp := 1.5
	req.Temperature = &temp
	if err := req.Validate(); err == nil {
		t.Error("expected error for temperature above 1")
	}

	if err := (AudioTranscriptionRequest{Model: "m", ResponseFormat: "json"}).Validate(); err == nil {
		t.Error("expected error for missing source")
	}
}
