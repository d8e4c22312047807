package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestUnitsWalksMarkdownFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "groceries.md", "- [ ] Buy milk tomorrow\n")
	writeFile(t, dir, "journal/reflection.md", "Today was a quiet day.\n")
	writeFile(t, dir, "notes.txt", "not markdown, ignored")

	units, err := NewDirReader(dir).Units(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 2)

	ids := []string{units[0].ID, units[1].ID}
	assert.Contains(t, ids, "groceries.md")
	assert.Contains(t, ids, "journal/reflection.md")
	for _, u := range units {
		assert.NotEmpty(t, u.Text)
		assert.False(t, u.ModTime.IsZero())
	}
}

func TestUnitsMissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewDirReader(filepath.Join(t.TempDir(), "nope")).Units(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSourceDir)
}

func TestUnitsStripsBOM(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bom.md", "\xEF\xBB\xBFplain body")

	units, err := NewDirReader(dir).Units(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "plain body", units[0].Text)
}

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		content  string
		wantMeta map[string]any
		wantBody string
	}{
		{
			name:     "no frontmatter",
			content:  "just a note",
			wantMeta: nil,
			wantBody: "just a note",
		},
		{
			name:     "valid frontmatter",
			content:  "---\ntags: [errands]\nsend: true\n---\n\n- [ ] Buy milk",
			wantMeta: map[string]any{"tags": []any{"errands"}, "send": true},
			wantBody: "- [ ] Buy milk",
		},
		{
			name:     "unterminated frontmatter left intact",
			content:  "---\ntitle: oops",
			wantMeta: nil,
			wantBody: "---\ntitle: oops",
		},
		{
			name:     "invalid yaml left intact",
			content:  "---\n\t:\tbroken\n---\nbody",
			wantMeta: nil,
			wantBody: "---\n\t:\tbroken\n---\nbody",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta, body := SplitFrontmatter(tc.content)
			assert.Equal(t, tc.wantMeta, meta)
			assert.Equal(t, tc.wantBody, body)
		})
	}
}
