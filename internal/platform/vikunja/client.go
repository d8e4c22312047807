// Package vikunja implements the board.Client interface against a
// Vikunja-compatible kanban REST API. Buckets are addressed through the
// numeric project, view and bucket IDs supplied by configuration.
package vikunja

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/notewire/notewire/internal/board"
	"github.com/notewire/notewire/internal/domain"
)

// Construction errors.
var (
	ErrMissingBaseURL = errors.New("board base URL cannot be empty")
	ErrMissingToken   = errors.New("board token cannot be empty")
	ErrMissingBucket  = errors.New("bucket ID mapping incomplete")
	ErrExpiredToken   = errors.New("board token is expired")
)

// Config holds everything needed to talk to one project on one board.
type Config struct {
	BaseURL   string
	Token     string
	ProjectID int64
	ViewID    int64

	// BucketIDs maps each symbolic bucket to its board-side numeric ID.
	// All three buckets must be present.
	BucketIDs map[domain.Bucket]int64
}

// Client is a thin typed wrapper over the board's remote API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	bucketByID map[int64]domain.Bucket
}

// New creates a Client and fails fast on incomplete configuration or an
// already-expired access token, before any pass gets to run.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	for _, b := range []domain.Bucket{domain.BucketInbox, domain.BucketConfirmed, domain.BucketDone} {
		if cfg.BucketIDs[b] == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingBucket, b)
		}
	}
	if err := checkTokenExpiry(cfg.Token, time.Now()); err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Bucket, len(cfg.BucketIDs))
	for b, id := range cfg.BucketIDs {
		byID[id] = b
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		bucketByID: byID,
	}, nil
}

// wireTask is the board's task representation on the wire.
type wireTask struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BucketID    int64  `json:"bucket_id"`
	Done        bool   `json:"done"`
}

// wireBucket is one kanban column as returned by the view endpoint.
type wireBucket struct {
	ID    int64      `json:"id"`
	Title string     `json:"title"`
	Tasks []wireTask `json:"tasks"`
}

// CreateTask creates a record in the given bucket and returns the
// board-assigned ID.
func (c *Client) CreateTask(ctx context.Context, bucket domain.Bucket, title, description string) (string, error) {
	body := map[string]any{
		"title":       title,
		"description": description,
		"bucket_id":   c.cfg.BucketIDs[bucket],
		"done":        false,
	}

	var created wireTask
	url := fmt.Sprintf("%s/api/v1/projects/%d/tasks", c.base(), c.cfg.ProjectID)
	if err := c.do(ctx, http.MethodPut, url, body, &created); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	if created.ID == 0 {
		return "", fmt.Errorf("create task: %w: board returned no ID", board.ErrWrite)
	}

	c.logger.DebugContext(ctx, "created board task",
		"task_id", created.ID,
		"bucket", bucket)
	return strconv.FormatInt(created.ID, 10), nil
}

// ListTasks returns a snapshot of all records currently in the bucket.
func (c *Client) ListTasks(ctx context.Context, bucket domain.Bucket) ([]domain.TaskRecord, error) {
	var buckets []wireBucket
	url := fmt.Sprintf("%s/api/v1/projects/%d/views/%d/tasks", c.base(), c.cfg.ProjectID, c.cfg.ViewID)
	if err := c.do(ctx, http.MethodGet, url, nil, &buckets); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	wantID := c.cfg.BucketIDs[bucket]
	for _, wb := range buckets {
		if wb.ID != wantID {
			continue
		}
		records := make([]domain.TaskRecord, 0, len(wb.Tasks))
		for _, wt := range wb.Tasks {
			records = append(records, c.toRecord(wt))
		}
		return records, nil
	}
	return nil, nil
}

// UpdateTask applies a partial update to a record.
func (c *Client) UpdateTask(ctx context.Context, id string, fields board.UpdateFields) error {
	body := map[string]any{}
	if fields.Description != nil {
		body["description"] = *fields.Description
	}
	if len(body) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/api/v1/tasks/%s", c.base(), id)
	if err := c.do(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	return nil
}

// MoveTask moves a record into the target bucket. Moving a record that is
// already there returns board.ErrAlreadyMoved, which callers treat as
// success.
func (c *Client) MoveTask(ctx context.Context, id string, target domain.Bucket) error {
	var current wireTask
	url := fmt.Sprintf("%s/api/v1/tasks/%s", c.base(), id)
	if err := c.do(ctx, http.MethodGet, url, nil, &current); err != nil {
		return fmt.Errorf("move task %s: %w", id, err)
	}

	targetID := c.cfg.BucketIDs[target]
	if current.BucketID == targetID {
		return fmt.Errorf("move task %s: %w", id, board.ErrAlreadyMoved)
	}

	body := map[string]any{
		"bucket_id": targetID,
		"done":      target == domain.BucketDone,
	}
	if err := c.do(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("move task %s: %w", id, err)
	}

	c.logger.DebugContext(ctx, "moved board task",
		"task_id", id,
		"target_bucket", target)
	return nil
}

// do performs one HTTP exchange and decodes the response into out when
// non-nil. All failures are mapped onto the board error taxonomy.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", board.ErrWrite, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", board.ErrWrite, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", board.ErrWrite, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", board.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return board.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", board.ErrWrite, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", board.ErrWrite, err)
	}
	return nil
}

func (c *Client) toRecord(wt wireTask) domain.TaskRecord {
	bucket, ok := c.bucketByID[wt.BucketID]
	if !ok {
		// Records parked in buckets we are not configured for still get
		// surfaced; treat them as inbox so nothing executes them.
		bucket = domain.BucketInbox
	}
	return domain.TaskRecord{
		ID:          strconv.FormatInt(wt.ID, 10),
		Title:       wt.Title,
		Description: wt.Description,
		Bucket:      bucket,
	}
}

func (c *Client) base() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}
