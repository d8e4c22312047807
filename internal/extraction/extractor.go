package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/notewire/notewire/internal/domain"
)

// ModelClient is the narrow surface an extraction backend must provide.
// Implementations live under internal/platform and are responsible for
// their own retry behavior against the remote model service.
type ModelClient interface {
	// Complete sends a system and user message to the model and returns
	// the raw response text.
	Complete(ctx context.Context, system, user string) (string, error)
}

// Extractor prompts a language model with one source unit at a time and
// parses the response into task candidates. Units longer than the chunk
// size are split at markdown boundaries and extracted chunk by chunk.
type Extractor struct {
	model     ModelClient
	chunkSize int
	logger    *slog.Logger
}

// NewExtractor creates an Extractor. Model and logger are required; a
// chunkSize of zero or less selects the default.
func NewExtractor(model ModelClient, chunkSize int, logger *slog.Logger) (*Extractor, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Extractor{model: model, chunkSize: chunkSize, logger: logger}, nil
}

// Extract returns the task candidates found in one unit of note text,
// plus the count of individually malformed items that were dropped.
//
// Zero candidates is success: most notebook pages contain no research
// tasks. A backend failure on any chunk is reported wrapping ErrBackend
// and scopes to this unit only.
func (e *Extractor) Extract(ctx context.Context, content string, meta map[string]any) ([]domain.TaskCandidate, int, error) {
	chunks := chunkContent(content, e.chunkSize)
	if len(chunks) > 1 {
		e.logger.DebugContext(ctx, "split unit for extraction",
			"chunks", len(chunks))
	}

	var candidates []domain.TaskCandidate
	skipped := 0
	for _, chunk := range chunks {
		user, err := buildUserPrompt(chunk, meta)
		if err != nil {
			return nil, 0, fmt.Errorf("build prompt: %w", err)
		}

		response, err := e.model.Complete(ctx, systemPrompt, user)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrBackend, err)
		}

		e.logger.DebugContext(ctx, "model response received",
			"response_length", len(response))

		found, dropped, err := ParseCandidates(response)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, found...)
		skipped += dropped
	}

	if skipped > 0 {
		e.logger.WarnContext(ctx, "dropped malformed candidates",
			"skipped", skipped,
			"kept", len(candidates))
	}
	return candidates, skipped, nil
}
