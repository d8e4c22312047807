// Package jigsaw implements the execution.Executor interface against a
// JigsawStack-compatible web search API. A task's instruction text is
// submitted as the search query and the provider's AI overview of the
// results becomes the execution summary.
package jigsaw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/notewire/notewire/internal/execution"
)

// Construction errors.
var (
	ErrMissingAPIKey  = errors.New("execution service API key cannot be empty")
	ErrMissingBaseURL = errors.New("execution service URL cannot be empty")
)

// noResultsNotice is recorded when the provider answered but had nothing
// useful to say. The task still completes: an empty answer is an answer.
const noResultsNotice = "No results or overview available"

// Config holds the execution service endpoint and its credential.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout bounds one execution end to end. The adapter never hangs
	// the caller past this.
	Timeout time.Duration
}

// Client calls the web search API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client, failing fast on missing configuration.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

type searchRequest struct {
	Query      string `json:"query"`
	AIOverview bool   `json:"ai_overview"`
}

type searchResponse struct {
	Success    bool   `json:"success"`
	AIOverview string `json:"ai_overview"`
	Results    []struct {
		Content string `json:"content"`
	} `json:"results"`
}

// Execute runs one web search for the instruction text and summarizes the
// outcome. All failures, including the adapter's own timeout, come back
// as ordinary errors for the caller to record on the task.
func (c *Client) Execute(ctx context.Context, instruction string) (execution.Result, error) {
	if strings.TrimSpace(instruction) == "" {
		return execution.Result{}, fmt.Errorf("%w: empty instruction", execution.ErrExecutionFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(searchRequest{Query: instruction, AIOverview: true})
	if err != nil {
		return execution.Result{}, fmt.Errorf("%w: encode request: %v", execution.ErrExecutionFailed, err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/web/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return execution.Result{}, fmt.Errorf("%w: build request: %v", execution.ErrExecutionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return execution.Result{}, fmt.Errorf("%w: no response within %s", execution.ErrTimeout, c.cfg.Timeout)
		}
		return execution.Result{}, fmt.Errorf("%w: %v", execution.ErrExecutionFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return execution.Result{}, fmt.Errorf("%w: status %d: %s",
			execution.ErrExecutionFailed, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return execution.Result{}, fmt.Errorf("%w: decode response: %v", execution.ErrExecutionFailed, err)
	}
	if !out.Success {
		return execution.Result{}, fmt.Errorf("%w: provider reported failure", execution.ErrExecutionFailed)
	}

	summary := out.AIOverview
	if summary == "" {
		// Fall back to the first result snippet when no overview came back.
		if len(out.Results) > 0 && out.Results[0].Content != "" {
			summary = out.Results[0].Content
		} else {
			summary = noResultsNotice
		}
	}

	c.logger.DebugContext(ctx, "web search completed",
		"summary_length", len(summary),
		"result_count", len(out.Results))
	return execution.Result{Summary: summary}, nil
}
