// Package deepinfra provides an HTTP client for the DeepInfra hosting API,
// covering chat completions and audio transcription.
//
// # Quick Start
//
//	client, err := deepinfra.NewClient(os.Getenv("DEEPINFRA_API_TOKEN"))
//
// # Chat Completion
//
//	resp, err := client.ChatCompletion(ctx, deepinfra.NewChatCompletionRequest(
//	    deepinfra.SystemMessage("You are a helpful assistant."),
//	    deepinfra.UserMessage("Hello!"),
//	))
//	fmt.Println(resp.Choices[0].Message.Content)
//
// # Audio Transcription
//
//	req := deepinfra.NewAudioTranscriptionRequest(deepinfra.AudioFromFile("speech.mp3"))
//	req.Language = "en"
//	resp, err := client.AudioTranscription(ctx, req)
//	fmt.Println(resp.Text)
//
// The audio source can also be an in-memory buffer:
//
//	src := deepinfra.AudioFromBytes(data, "speech.wav")
//
// # Tools/Function Calling
//
//	req := deepinfra.NewChatCompletionRequest(
//	    deepinfra.UserMessage("What's the weather in Tokyo?"),
//	)
//	req.Tools = []deepinfra.Tool{
//	    deepinfra.NewFunctionTool(deepinfra.FunctionDefinition{
//	        Name:        "get_weather",
//	        Description: "Get the weather for a location",
//	        Parameters: map[string]any{
//	            "type": "object",
//	            "properties": map[string]any{
//	                "location": map[string]string{"type": "string"},
//	            },
//	            "required": []string{"location"},
//	        },
//	    }),
//	}
//
// # Errors
//
// API error payloads are decoded into *APIError and classified by status
// (AuthenticationError, RateLimitError, InvalidRequestError). A file-path
// audio source pointing at a missing file fails with *FileNotFoundError
// before any network call. Transport failures are returned as-is or wrapped.
// Nothing is retried.
//
// # With Metrics
//
//	traced := client.WithMetrics()
//	resp, err := traced.ChatCompletion(ctx, req)
package deepinfra
