package deepinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultWhisperModel is the transcription model used when a request is built
// with NewAudioTranscriptionRequest and not overridden.
const DefaultWhisperModel = "openai/whisper-large-v3-turbo"

// DefaultAudioResponseFormat is the default transcription response format.
const DefaultAudioResponseFormat = "json"

// AudioSource is the audio input of a transcription request: either a local
// file path or an in-memory buffer with a file name. The two variants are
// mutually exclusive by construction; no other implementation exists.
type AudioSource interface {
	filename() string
	audioSource()
}

// FileSource references a local audio file. The file's existence is checked
// before any network activity; its bytes are read and the handle closed
// during request construction.
type FileSource struct {
	Path string
}

func (s FileSource) filename() string { return filepath.Base(s.Path) }
func (s FileSource) audioSource()     {}

// BytesSource carries audio bytes already in memory, with the file name to
// report in the multipart file part.
type BytesSource struct {
	Buffer   []byte
	FileName string
}

func (s BytesSource) filename() string { return s.FileName }
func (s BytesSource) audioSource()     {}

// AudioFromFile builds a file-path audio source.
func AudioFromFile(path string) AudioSource {
	return FileSource{Path: path}
}

// AudioFromBytes builds an in-memory audio source.
func AudioFromBytes(buffer []byte, fileName string) AudioSource {
	return BytesSource{Buffer: buffer, FileName: fileName}
}

// AudioTranscriptionRequest describes a transcription request. Only Source is
// required; Model and ResponseFormat default when built with
// NewAudioTranscriptionRequest. The temperature range (0 to 1) is checked
// only by the explicit Validate method.
type AudioTranscriptionRequest struct {
	// The audio to transcribe.
	Source AudioSource `validate:"required"`
	// The transcription model to use.
	Model string `validate:"required"`
	// The desired response format, e.g. "json" or "text".
	ResponseFormat string `validate:"required"`
	// Optional language of the input audio in ISO-639-1 format.
	Language string
	// Optional prompt to guide the transcription style.
	Prompt string
	// Optional sampling temperature between 0 and 1.
	Temperature *float64 `validate:"omitempty,gte=0,lte=1"`
	// Optional timestamp granularities, e.g. "word", "segment".
	TimestampGranularities []string
}

// NewAudioTranscriptionRequest builds a request for the given source with the
// default model and response format.
func NewAudioTranscriptionRequest(source AudioSource) AudioTranscriptionRequest {
	return AudioTranscriptionRequest{
		Source:         source,
		Model:          DefaultWhisperModel,
		ResponseFormat: DefaultAudioResponseFormat,
	}
}

// AudioTranscriptionResponse is the successful transcription result.
type AudioTranscriptionResponse struct {
	Text string `json:"text"`
}

// AudioTranscription transcribes an audio file. The request is sent as a
// multipart form with the audio attached as the "file" part. Exactly one
// round trip is made; a missing local file fails before any network call.
//
// The response body is decoded by shape, in this order: a body carrying a
// "text" field is a success; a body whose "detail" is a string is an API
// error with that message; a body whose "detail" is a list of field errors is
// an API error joining each entry as "<dot-joined-loc>: <msg>" with ", ".
func (c *Client) AudioTranscription(ctx context.Context, req AudioTranscriptionRequest) (*AudioTranscriptionResponse, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	ctx, span := c.tracer.Start(ctx, "deepinfra.audio_transcription",
		trace.WithAttributes(attribute.String("deepinfra.model", req.Model)))
	defer span.End()

	resp, err := c.audioTranscription(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return resp, nil
}

func (c *Client) audioTranscription(ctx context.Context, req AudioTranscriptionRequest) (*AudioTranscriptionResponse, error) {
	body, contentType, err := buildTranscriptionForm(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, audioTranscriptionsPath, contentType, body)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	return decodeTranscription(status, respBody)
}

// buildTranscriptionForm assembles the multipart body. Field order: model,
// response_format, file, then the optional fields that are present, with one
// repeated timestamp_granularities[] field per element in list order.
func buildTranscriptionForm(req AudioTranscriptionRequest) ([]byte, string, error) {
	if req.Source == nil {
		return nil, "", fmt.Errorf("%w: audio source is required", ErrNilSource)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("model", req.Model); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := form.WriteField("response_format", req.ResponseFormat); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}

	if err := writeFilePart(form, req.Source); err != nil {
		return nil, "", err
	}

	if req.Language != "" {
		if err := form.WriteField("language", req.Language); err != nil {
			return nil, "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if req.Prompt != "" {
		if err := form.WriteField("prompt", req.Prompt); err != nil {
			return nil, "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if req.Temperature != nil {
		value := strconv.FormatFloat(*req.Temperature, 'f', -1, 64)
		if err := form.WriteField("temperature", value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	for _, granularity := range req.TimestampGranularities {
		if err := form.WriteField("timestamp_granularities[]", granularity); err != nil {
			return nil, "", fmt.Errorf("failed to write form field: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return buf.Bytes(), form.FormDataContentType(), nil
}

func writeFilePart(form *multipart.Writer, source AudioSource) error {
	switch src := source.(type) {
	case FileSource:
		if _, err := os.Stat(src.Path); err != nil {
			if os.IsNotExist(err) {
				return &FileNotFoundError{Path: src.Path}
			}
			return fmt.Errorf("failed to stat file: %w", err)
		}

		file, err := os.Open(src.Path)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()

		part, err := form.CreateFormFile("file", src.filename())
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
	case BytesSource:
		part, err := form.CreateFormFile("file", src.FileName)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(src.Buffer); err != nil {
			return fmt.Errorf("failed to write file part: %w", err)
		}
	}

	return nil
}

// decodeTranscription applies the shape-based decode priority. The HTTP
// status never picks the branch; it is only recorded on decoded errors.
func decodeTranscription(status int, body []byte) (*AudioTranscriptionResponse, error) {
	var success struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(body, &success); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if success.Text != nil {
		return &AudioTranscriptionResponse{Text: *success.Text}, nil
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		return nil, parseAPIError(status, body)
	}

	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		// 2xx body with neither text nor detail.
		return nil, fmt.Errorf("failed to decode response: no recognizable shape in body")
	}

	return nil, parseAPIError(status, body)
}
