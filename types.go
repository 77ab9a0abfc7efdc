package deepinfra

// Role is the message role discriminant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// DefaultChatModel is the model used when a request is built with
// NewChatCompletionRequest and not overridden.
const DefaultChatModel = "deepseek-ai/DeepSeek-V3"

// Message is one entry of a chat conversation. The role is assigned by the
// constructor used to build the message, which keeps role and payload shape
// consistent.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// SystemMessage builds a system-role message. A request conventionally
// contains exactly one, though this is not enforced locally.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message. Tool calls emitted by
// the model can be attached when echoing history back.
func AssistantMessage(content string, toolCalls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

// ToolMessage builds a tool-role message carrying the result of a tool call.
func ToolMessage(content, toolCallID string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// WithName returns a copy of the message with the participant name set.
func (m Message) WithName(name string) Message {
	m.Name = name
	return m
}

// ChatCompletionRequest is the chat completions request body. The documented
// parameter ranges are carried as validate tags and checked only by the
// explicit Validate method; the send path passes values through unchanged and
// leaves range enforcement to the service.
type ChatCompletionRequest struct {
	// Model name, e.g. "meta-llama/Llama-2-70b-chat-hf".
	Model string `json:"model" validate:"required"`
	// Conversation messages. Must include one system message anywhere.
	Messages []Message `json:"messages" validate:"required,min=1"`
	// Penalizes tokens by their frequency in the text so far. Range: -2 to 2.
	FrequencyPenalty float64 `json:"frequency_penalty" validate:"gte=-2,lte=2"`
	// Maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens" validate:"gte=0"`
	// Minimum token probability relative to the most likely token, 0 to 1.
	// 0 disables.
	MinP float64 `json:"min_p" validate:"gte=0,lte=1"`
	// Number of sequences to return, 1 to 4.
	N int `json:"n" validate:"gte=1,lte=4"`
	// Penalizes tokens that already appear in the text so far. Range: -2 to 2.
	PresencePenalty float64 `json:"presence_penalty" validate:"gte=-2,lte=2"`
	// Repetition penalty. Values >1 penalize, <1 encourage. Range: 0.01 to 5.
	RepetitionPenalty float64 `json:"repetition_penalty" validate:"gte=0.01,lte=5"`
	// Whether the service should stream the output via SSE. The flag is sent
	// as-is; this client does not consume event streams.
	Stream bool `json:"stream"`
	// Sampling temperature, 0 to 2. Higher values make output more random.
	Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`
	// Sample from the top_k most likely tokens. 0 disables.
	TopK int `json:"top_k" validate:"gte=0"`
	// Nucleus sampling parameter, 0 to 1.
	TopP float64 `json:"top_p" validate:"gte=0,lte=1"`

	// Optional fields below are omitted from the JSON body when unset.

	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	// Seed for the random number generator. Determinism is not guaranteed.
	Seed *uint64 `json:"seed,omitempty"`
	// Up to 16 sequences where generation stops.
	Stop []string `json:"stop,omitempty" validate:"max=16"`
	// "none", "auto", or a specific function selector.
	ToolChoice string `json:"tool_choice,omitempty"`
	Tools      []Tool `json:"tools,omitempty" validate:"dive"`
	// End-user identifier for abuse monitoring.
	User string `json:"user,omitempty"`
}

// NewChatCompletionRequest builds a request with the service defaults:
// model "deepseek-ai/DeepSeek-V3", max_tokens 100000, n 1, temperature 1,
// top_p 1, repetition_penalty 1, everything else zero.
func NewChatCompletionRequest(messages ...Message) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:             DefaultChatModel,
		Messages:          messages,
		MaxTokens:         100000,
		N:                 1,
		RepetitionPenalty: 1.0,
		Temperature:       1.0,
		TopP:              1.0,
	}
}

// Tool is a capability the model may call. Only functions are supported.
type Tool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function" validate:"required"`
}

// NewFunctionTool wraps a function definition in a tool of type "function".
func NewFunctionTool(fn FunctionDefinition) Tool {
	return Tool{Type: "function", Function: fn}
}

// FunctionDefinition describes a callable function with a JSON-schema-shaped
// parameter specification.
type FunctionDefinition struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall is a model-emitted request to invoke a tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its arguments as a raw
// JSON-encoded string. The model may not always generate valid JSON; the
// arguments are never parsed here.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ResponseFormat selects the output format of the completion.
type ResponseFormat struct {
	Type ResponseFormatType `json:"type"`
}

type ResponseFormatType string

const (
	ResponseFormatText       ResponseFormatType = "text"
	ResponseFormatJSONObject ResponseFormatType = "json_object"
)

// ChatCompletionResponse is the chat completions response body. The id,
// object, created and model fields echo request metadata when the service
// provides them.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
