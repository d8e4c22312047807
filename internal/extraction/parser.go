package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/notewire/notewire/internal/domain"
)

var (
	fencedJSONRe  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
	unquotedKeyRe = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
)

// rawCandidate mirrors the JSON shape the model is asked to emit. Fields
// are decoded loosely; validation happens per item in domain.
type rawCandidate struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	SearchQueries string `json:"web_search_queries"`
}

// ParseCandidates extracts task candidates from a raw model response.
//
// The response is treated as untrusted, semi-structured text: candidates
// are expected inside a fenced json code block, but the block may carry
// trailing commas, bare keys or individually malformed items. A missing
// code block means the model found no tasks and is success. A present but
// wholly unparseable block returns ErrParse. Malformed individual items
// are dropped and counted in skipped; their siblings are unaffected.
func ParseCandidates(response string) (candidates []domain.TaskCandidate, skipped int, err error) {
	block := extractFencedBlock(response)
	if block == "" {
		return nil, 0, nil
	}

	items, err := decodeArray(block)
	if err != nil {
		// Second chance after repairing the common LLM formatting slips.
		items, err = decodeArray(cleanJSON(block))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	for _, item := range items {
		var raw rawCandidate
		if err := json.Unmarshal(item, &raw); err != nil {
			skipped++
			continue
		}
		c, err := domain.NewTaskCandidate(raw.Title, raw.Description, raw.SearchQueries)
		if err != nil {
			skipped++
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, skipped, nil
}

// extractFencedBlock concatenates the contents of all fenced code blocks
// in the response. Models occasionally split their answer across blocks.
func extractFencedBlock(response string) string {
	matches := fencedJSONRe.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m[1]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func decodeArray(block string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(block), &items); err == nil {
		return items, nil
	}

	// A single bare object instead of an array is a common model slip.
	var single json.RawMessage
	if err := json.Unmarshal([]byte(block), &single); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(block)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("payload is neither array nor object")
	}
	return []json.RawMessage{single}, nil
}

// cleanJSON repairs trailing commas and unquoted property names, the two
// most frequent defects in model-emitted JSON.
func cleanJSON(block string) string {
	block = trailingComma.ReplaceAllString(block, "$1")
	block = unquotedKeyRe.ReplaceAllString(block, `$1"$2"$3`)
	return strings.TrimSpace(block)
}
