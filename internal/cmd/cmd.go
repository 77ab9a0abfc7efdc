// Package cmd implements the deepinfra CLI subcommands.
package cmd

import (
	"fmt"
	"os"

	deepinfra "github.com/simoneromano96/deepinfra-go"
	"github.com/simoneromano96/deepinfra-go/internal/config"
	"github.com/simoneromano96/deepinfra-go/internal/logging"
)

const usage = `Usage: deepinfra <command> [flags]

Commands:
  chat        interactive chat session
  transcribe  transcribe an audio file

Environment:
  DEEPINFRA_API_TOKEN  API token (required)
  DEEPINFRA_MODEL      chat model override
  DEEPINFRA_CONFIG     path to a YAML config file
`

// Run dispatches the CLI and returns the process exit code.
func Run(args []string) int {
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	switch args[1] {
	case "chat":
		return runChat(client, cfg, args[2:])
	case "transcribe":
		return runTranscribe(client, cfg, args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[1], usage)
		return 2
	}
}

func newClient(cfg *config.Config) (*deepinfra.Client, error) {
	opts := []deepinfra.ClientOption{
		deepinfra.WithLogger(logging.Get()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, deepinfra.WithBaseURL(cfg.BaseURL))
	}
	return deepinfra.NewClient(cfg.Token, opts...)
}
