// Package gemini implements the extraction.ModelClient interface using
// Google's Gemini API. Transient API failures are retried with
// exponential backoff and jitter; permanent failures (safety blocks,
// empty responses) are returned immediately.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/notewire/notewire/internal/config"
)

// Common errors.
var (
	ErrInvalidConfig   = errors.New("invalid gemini configuration")
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrContentBlocked  = errors.New("content blocked by safety filters")
	ErrInvalidResponse = errors.New("invalid response from model")
)

// Client talks to the Gemini API on behalf of the extractor.
type Client struct {
	logger     *slog.Logger
	client     *genai.Client
	model      string
	maxRetries int
	baseDelay  time.Duration
}

// New creates a Client from the model configuration.
func New(ctx context.Context, cfg config.ModelConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInvalidConfig, err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if baseDelay < time.Second {
		baseDelay = 2 * time.Second
	}

	return &Client{
		logger:     logger,
		client:     client,
		model:      cfg.Name,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}, nil
}

// Complete sends the system and user messages to the model and returns
// the raw response text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if user == "" {
		return "", ErrEmptyPrompt
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}
	if system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		c.logger.DebugContext(ctx, "calling gemini",
			"model", c.model,
			"attempt", attempt+1,
			"max_attempts", c.maxRetries+1)

		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), genCfg)
		if err == nil {
			text, perr := responseText(resp)
			if perr == nil {
				return text, nil
			}
			// Malformed or blocked responses do not improve on retry.
			return "", perr
		}
		lastErr = err
		c.logger.WarnContext(ctx, "gemini call failed",
			"attempt", attempt+1,
			"error", err)

		if attempt == c.maxRetries {
			break
		}

		// Exponential backoff with jitter between 0.5x and 1x.
		backoff := float64(c.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("gemini call cancelled: %w", ctx.Err())
		}
	}

	return "", fmt.Errorf("gemini call failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// responseText pulls the plain text out of a generation response,
// rejecting empty or safety-blocked candidates.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content", ErrInvalidResponse)
	}

	text := ""
	for _, part := range cand.Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text parts", ErrInvalidResponse)
	}
	return text, nil
}
