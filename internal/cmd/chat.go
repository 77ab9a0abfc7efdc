package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	deepinfra "github.com/simoneromano96/deepinfra-go"
	"github.com/simoneromano96/deepinfra-go/internal/config"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
)

func runChat(client *deepinfra.Client, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	model := fs.String("model", cfg.Model, "chat model")
	system := fs.String("system", cfg.System, "system prompt")
	temperature := fs.Float64("temperature", 1.0, "sampling temperature (0-2)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rl := liner.NewLiner()
	rl.SetCtrlCAborts(true)
	rl.SetMultiLineMode(true)
	defer rl.Close()

	var messages []deepinfra.Message
	if *system != "" {
		messages = append(messages, deepinfra.SystemMessage(*system))
	}

	modelName := *model
	if modelName == "" {
		modelName = deepinfra.DefaultChatModel
	}
	fmt.Printf("%sdeepinfra interactive chat (%s)%s\n", colorYellow, modelName, colorReset)
	fmt.Println("Type your message, or 'exit' to quit.")

	for {
		fmt.Print(colorGreen)
		line, err := rl.Prompt("> ")
		fmt.Print(colorReset)

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("\nExiting.")
				return 0
			}
			fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return 0
		}
		rl.AppendHistory(line)

		messages = append(messages, deepinfra.UserMessage(line))

		req := deepinfra.NewChatCompletionRequest(messages...)
		if *model != "" {
			req.Model = *model
		}
		req.Temperature = *temperature

		resp, err := client.ChatCompletion(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			// Drop the failed turn so it is not resent.
			messages = messages[:len(messages)-1]
			continue
		}

		if len(resp.Choices) == 0 {
			fmt.Fprintln(os.Stderr, "error: empty response")
			messages = messages[:len(messages)-1]
			continue
		}

		answer := resp.Choices[0].Message
		messages = append(messages, answer)
		fmt.Printf("%s%s%s\n", colorBlue, answer.Content, colorReset)
	}
}
