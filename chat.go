package deepinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ChatCompletion sends a chat completion request and returns the decoded
// response. Exactly one round trip is made; there are no retries. Non-success
// responses are decoded into typed API errors; transport and decode failures
// are returned wrapped.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	ctx, span := c.tracer.Start(ctx, "deepinfra.chat_completion",
		trace.WithAttributes(attribute.String("deepinfra.model", req.Model)))
	defer span.End()

	resp, err := c.chatCompletion(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return resp, nil
}

func (c *Client) chatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, chatCompletionsPath, "application/json", body)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, parseAPIError(status, respBody)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &completion, nil
}
