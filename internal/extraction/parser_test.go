package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidatesNoCodeBlock(t *testing.T) {
	t.Parallel()

	// A response without a fenced block means the model found no tasks.
	candidates, skipped, err := ParseCandidates("I analyzed the page and found no research tasks.")
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Zero(t, skipped)
}

func TestParseCandidatesWellFormed(t *testing.T) {
	t.Parallel()

	response := "Here are the tasks I found:\n```json\n" +
		`[{"title": "Buy milk tomorrow", "description": "Find where to buy milk nearby", "web_search_queries": "milk store near me"}]` +
		"\n```\nLet me know if you need more."

	candidates, skipped, err := ParseCandidates(response)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Buy milk tomorrow", candidates[0].Title)
	assert.Equal(t, "Find where to buy milk nearby", candidates[0].Description)
	assert.Equal(t, "milk store near me", candidates[0].SearchQueries)
}

func TestParseCandidatesRepairsSloppyJSON(t *testing.T) {
	t.Parallel()

	// Trailing comma and an unquoted key, both common model slips.
	response := "```json\n" +
		`[{title: "q", "description": "research q", "web_search_queries": "q",}]` +
		"\n```"

	candidates, skipped, err := ParseCandidates(response)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, candidates, 1)
	assert.Equal(t, "q", candidates[0].Title)
}

func TestParseCandidatesBareObject(t *testing.T) {
	t.Parallel()

	response := "```json\n" +
		`{"title": "q", "description": "research q", "web_search_queries": ""}` +
		"\n```"

	candidates, _, err := ParseCandidates(response)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}

func TestParseCandidatesSkipsMalformedItems(t *testing.T) {
	t.Parallel()

	// The second item is missing its description: it must be dropped
	// without taking its siblings down.
	response := "```json\n" + `[
		{"title": "first", "description": "do the first thing", "web_search_queries": ""},
		{"title": "second"},
		{"title": "third", "description": "do the third thing", "web_search_queries": ""}
	]` + "\n```"

	candidates, skipped, err := ParseCandidates(response)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, candidates, 2)
	assert.Equal(t, "first", candidates[0].Title)
	assert.Equal(t, "third", candidates[1].Title)
}

func TestParseCandidatesUnparseablePayload(t *testing.T) {
	t.Parallel()

	_, _, err := ParseCandidates("```json\nthis is not json at all\n```")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseCandidatesMultipleBlocks(t *testing.T) {
	t.Parallel()

	// Everything concatenated must still decode; a stray empty block is
	// ignored.
	response := "```json\n[\n```" // unterminated array in first block
	_, _, err := ParseCandidates(response)
	assert.Error(t, err)
}
