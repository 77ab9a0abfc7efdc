package deepinfra

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestNewChatCompletionRequest_Defaults(t *testing.T) {
	req := NewChatCompletionRequest(UserMessage("hi"))

	if req.Model != "deepseek-ai/DeepSeek-V3" {
		t.Errorf("expected default model, got %s", req.Model)
	}
	if req.MaxTokens != 100000 {
		t.Errorf("expected max_tokens 100000, got %d", req.MaxTokens)
	}
	if req.N != 1 {
		t.Errorf("expected n 1, got %d", req.N)
	}
	if req.Temperature != 1.0 {
		t.Errorf("expected temperature 1.0, got %v", req.Temperature)
	}
	if req.TopP != 1.0 {
		t.Errorf("expected top_p 1.0, got %v", req.TopP)
	}
	if req.RepetitionPenalty != 1.0 {
		t.Errorf("expected repetition_penalty 1.0, got %v", req.RepetitionPenalty)
	}
	if req.Stream || req.TopK != 0 || req.MinP != 0 || req.FrequencyPenalty != 0 || req.PresencePenalty != 0 {
		t.Error("expected zero defaults for stream, top_k, min_p and penalties")
	}
}

func TestChatCompletionRequest_OptionalFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(NewChatCompletionRequest(UserMessage("hi")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	for _, key := range []string{"stop", "seed", "response_format", "tools", "tool_choice", "user"} {
		if strings.Contains(body, `"`+key+`"`) {
			t.Errorf("expected %q to be absent from body: %s", key, body)
		}
	}
	for _, key := range []string{"model", "messages", "frequency_penalty", "max_tokens", "min_p", "n",
		"presence_penalty", "repetition_penalty", "stream", "temperature", "top_k", "top_p"} {
		if !strings.Contains(body, `"`+key+`"`) {
			t.Errorf("expected %q to be present in body: %s", key, body)
		}
	}
}

func TestChatCompletionRequest_NullNeverEmitted(t *testing.T) {
	data, err := json.Marshal(NewChatCompletionRequest(UserMessage("hi")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("expected no null values in body: %s", data)
	}
}

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		msg  Message
		role Role
	}{
		{SystemMessage("be brief"), RoleSystem},
		{UserMessage("hi"), RoleUser},
		{AssistantMessage("hello"), RoleAssistant},
		{ToolMessage(`{"ok":true}`, "call_1"), RoleTool},
	}
	for _, tt := range tests {
		if tt.msg.Role != tt.role {
			t.Errorf("expected role %s, got %s", tt.role, tt.msg.Role)
		}
	}

	tool := ToolMessage("result", "call_9")
	if tool.ToolCallID != "call_9" {
		t.Errorf("expected tool_call_id call_9, got %s", tool.ToolCallID)
	}

	named := UserMessage("hi").WithName("alice")
	if named.Name != "alice" {
		t.Errorf("expected name alice, got %s", named.Name)
	}
}

// The server echoes the request messages back as the response message list;
// the decoded roles and contents must match the input exactly.
func TestChatCompletion_MessageRoundTrip(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req ChatCompletionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("server failed to decode request: %v", err)
		}

		resp := ChatCompletionResponse{
			ID:      "chatcmpl-1",
			Object:  "chat.completion",
			Model:   req.Model,
			Choices: make([]Choice, len(req.Messages)),
			Usage:   &Usage{PromptTokens: 4, CompletionTokens: 2, TotalTokens: 6},
		}
		for i, msg := range req.Messages {
			resp.Choices[i] = Choice{Index: i, Message: msg, FinishReason: "stop"}
		}
		json.NewEncoder(w).Encode(resp)
	})

	client := newTestClient(t, "token", handler)

	in := []Message{
		SystemMessage("You are terse."),
		UserMessage("Say hi."),
	}
	resp, err := client.ChatCompletion(context.Background(), NewChatCompletionRequest(in...))
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	if len(resp.Choices) != len(in) {
		t.Fatalf("expected %d choices, got %d", len(in), len(resp.Choices))
	}
	for i, choice := range resp.Choices {
		if choice.Message.Role != in[i].Role {
			t.Errorf("choice %d: expected role %s, got %s", i, in[i].Role, choice.Message.Role)
		}
		if choice.Message.Content != in[i].Content {
			t.Errorf("choice %d: expected content %q, got %q", i, in[i].Content, choice.Message.Content)
		}
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 6 {
		t.Errorf("expected usage total 6, got %+v", resp.Usage)
	}
}

func TestChatCompletion_ToolCallArgumentsKeptRaw(t *testing.T) {
	// Deliberately malformed JSON arguments: the client must pass them
	// through untouched.
	const rawArgs = `{"location": "Tok`

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ChatCompletionResponse{
			Choices: []Choice{{
				Message: Message{
					Role: RoleAssistant,
					ToolCalls: []ToolCall{{
						ID:   "call_1",
						Type: "function",
						Function: FunctionCall{
							Name:      "get_weather",
							Arguments: rawArgs,
						},
					}},
				},
				FinishReason: "tool_calls",
			}},
		}
		json.NewEncoder(w).Encode(resp)
	})

	client := newTestClient(t, "token", handler)

	resp, err := client.ChatCompletion(context.Background(), NewChatCompletionRequest(UserMessage("weather?")))
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(calls))
	}
	if calls[0].Function.Arguments != rawArgs {
		t.Errorf("expected raw arguments %q, got %q", rawArgs, calls[0].Function.Arguments)
	}
}

func TestChatCompletion_APIErrorDecoded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid token"}`))
	})

	client := newTestClient(t, "token", handler)

	_, err := client.ChatCompletion(context.Background(), NewChatCompletionRequest(UserMessage("hi")))
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("expected authentication error, got %T: %v", err, err)
	}
	if !IsAPIError(err) {
		t.Errorf("expected IsAPIError to hold, got %v", err)
	}
}

func TestChatCompletion_ValidationErrorDecoded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body", "n"], "msg": "ensure this value is less than or equal to 4", "type": "value_error"}]}`))
	})

	client := newTestClient(t, "token", handler)

	_, err := client.ChatCompletion(context.Background(), NewChatCompletionRequest(UserMessage("hi")))
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %T: %v", err, err)
	}
	want := "body.n: ensure this value is less than or equal to 4"
	if invalid.Message != want {
		t.Errorf("expected message %q, got %q", want, invalid.Message)
	}
}

func TestChatCompletion_MalformedSuccessBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	client := newTestClient(t, "token", handler)

	_, err := client.ChatCompletion(context.Background(), NewChatCompletionRequest(UserMessage("hi")))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if IsAPIError(err) {
		t.Errorf("expected a transport-level decode error, got API error %v", err)
	}
}
