package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	deepinfra "github.com/simoneromano96/deepinfra-go"
	"github.com/simoneromano96/deepinfra-go/internal/config"
)

func runTranscribe(client *deepinfra.Client, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	model := fs.String("model", cfg.WhisperModel, "transcription model")
	language := fs.String("language", "", "audio language (ISO-639-1)")
	prompt := fs.String("prompt", "", "transcription style prompt")
	format := fs.String("format", "", "response format")
	temperature := fs.Float64("temperature", -1, "sampling temperature (0-1)")
	granularities := fs.String("granularities", "", "comma-separated timestamp granularities")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: deepinfra transcribe [flags] <audio-file>")
		return 2
	}

	req := deepinfra.NewAudioTranscriptionRequest(deepinfra.AudioFromFile(fs.Arg(0)))
	if *model != "" {
		req.Model = *model
	}
	if *format != "" {
		req.ResponseFormat = *format
	}
	req.Language = *language
	req.Prompt = *prompt
	if *temperature >= 0 {
		req.Temperature = temperature
	}
	if *granularities != "" {
		for _, g := range strings.Split(*granularities, ",") {
			if g = strings.TrimSpace(g); g != "" {
				req.TimestampGranularities = append(req.TimestampGranularities, g)
			}
		}
	}

	resp, err := client.AudioTranscription(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Println(resp.Text)
	return 0
}
