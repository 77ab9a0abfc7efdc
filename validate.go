package deepinfra

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks the request against the documented parameter ranges
// (temperature 0-2, top_p 0-1, n 1-4, and so on). Validation is opt-in: the
// send path never calls it, and out-of-range values are passed through to the
// service, which is the authority on rejection.
func (r ChatCompletionRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks that a source is set and that the optional temperature is
// within 0 to 1. Like the chat counterpart, it is never called on the send
// path.
func (r AudioTranscriptionRequest) Validate() error {
	return validate.Struct(r)
}
