// Package ollama implements the extraction.ModelClient interface against
// a local Ollama server, for running extraction fully offline.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"

	"github.com/notewire/notewire/internal/config"
)

// Common errors.
var (
	ErrInvalidConfig = errors.New("invalid ollama configuration")
	ErrEmptyResponse = errors.New("empty response from model")
)

// Client talks to an Ollama server on behalf of the extractor.
type Client struct {
	llm    *lcollama.LLM
	logger *slog.Logger
	model  string
}

// New creates a Client from the model configuration.
func New(cfg config.ModelConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}
	if cfg.OllamaHost == "" {
		return nil, fmt.Errorf("%w: server URL cannot be empty", ErrInvalidConfig)
	}

	llm, err := lcollama.New(
		lcollama.WithModel(cfg.Name),
		lcollama.WithServerURL(cfg.OllamaHost),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Client{llm: llm, logger: logger, model: cfg.Name}, nil
}

// Complete sends the system and user messages to the model and returns
// the raw response text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	c.logger.DebugContext(ctx, "calling ollama", "model", c.model)

	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
