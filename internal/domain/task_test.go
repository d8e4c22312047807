package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBucket(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"inbox", "confirmed", "done"} {
		b, err := ParseBucket(name)
		require.NoError(t, err, "known bucket %q should parse", name)
		assert.True(t, b.Valid())
		assert.Equal(t, name, b.String())
	}

	_, err := ParseBucket("archive")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBucket)
}

func TestNewTaskCandidate(t *testing.T) {
	t.Parallel()

	t.Run("valid candidate", func(t *testing.T) {
		c, err := NewTaskCandidate("Buy milk tomorrow", "Find the nearest store that sells milk", "milk store near me")
		require.NoError(t, err)
		assert.Equal(t, "Buy milk tomorrow", c.Title)
		assert.Equal(t, "Find the nearest store that sells milk", c.Description)
		assert.Equal(t, "milk store near me", c.SearchQueries)
	})

	t.Run("whitespace-only title rejected", func(t *testing.T) {
		_, err := NewTaskCandidate("   ", "do something", "")
		assert.ErrorIs(t, err, ErrEmptyCandidateTitle)
	})

	t.Run("missing description rejected", func(t *testing.T) {
		_, err := NewTaskCandidate("a quote", "", "")
		assert.ErrorIs(t, err, ErrEmptyCandidateDescription)
	})

	t.Run("over-long fields are clipped, not rejected", func(t *testing.T) {
		long := strings.Repeat("x", MaxCandidateDescriptionLen*2)
		c, err := NewTaskCandidate("title", long, "")
		require.NoError(t, err)
		assert.Len(t, c.Description, MaxCandidateDescriptionLen)
		assert.True(t, strings.HasSuffix(c.Description, "..."))
	})

	t.Run("clipping backs off to a rune boundary", func(t *testing.T) {
		// Two-byte runes guarantee the byte bound lands mid-rune.
		long := strings.Repeat("é", MaxCandidateTitleLen)
		c, err := NewTaskCandidate(long, "d", "")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(c.Title), MaxCandidateTitleLen)
		assert.True(t, utf8.ValidString(c.Title), "clipped title must stay valid UTF-8")
		assert.True(t, strings.HasSuffix(c.Title, "..."))
	})
}

func TestBoardDescription(t *testing.T) {
	t.Parallel()

	c := TaskCandidate{Title: "q", Description: "research it"}
	assert.Equal(t, "research it", c.BoardDescription())

	c.SearchQueries = "query one; query two"
	assert.Equal(t, "research it\n\nSuggested searches: query one; query two", c.BoardDescription())
}

func TestTaskRecordValidate(t *testing.T) {
	t.Parallel()

	rec := TaskRecord{ID: "42", Title: "t", Description: "d", Bucket: BucketInbox}
	require.NoError(t, rec.Validate())

	rec.ID = ""
	assert.ErrorIs(t, rec.Validate(), ErrEmptyTaskID)

	rec.ID = "42"
	rec.Bucket = "limbo"
	assert.ErrorIs(t, rec.Validate(), ErrInvalidBucket)
}

func TestTaskRecordStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		record TaskRecord
		want   TaskStatus
	}{
		{
			name:   "inbox record is extracted",
			record: TaskRecord{ID: "1", Bucket: BucketInbox, Description: "d"},
			want:   TaskStatusExtracted,
		},
		{
			name:   "confirmed record awaiting execution",
			record: TaskRecord{ID: "2", Bucket: BucketConfirmed, Description: "d"},
			want:   TaskStatusConfirmed,
		},
		{
			name:   "confirmed record with recorded failure",
			record: TaskRecord{ID: "3", Bucket: BucketConfirmed, Description: AnnotateFailure("d", "timed out")},
			want:   TaskStatusFailed,
		},
		{
			name:   "done record is completed",
			record: TaskRecord{ID: "4", Bucket: BucketDone, Description: AnnotateResult("d", "Paris")},
			want:   TaskStatusCompleted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.record.Status())
		})
	}
}

func TestAnnotationsPreserveOriginal(t *testing.T) {
	t.Parallel()

	orig := "find the capital of France"

	annotated := AnnotateResult(orig, "Paris")
	assert.True(t, strings.HasPrefix(annotated, orig), "original instruction must survive annotation")
	assert.Contains(t, annotated, "Paris")
	assert.True(t, HasResultAnnotation(annotated))
	assert.False(t, HasFailureAnnotation(annotated))

	failed := AnnotateFailure(orig, "search backend timed out")
	assert.True(t, strings.HasPrefix(failed, orig))
	assert.True(t, HasFailureAnnotation(failed))
	assert.False(t, HasResultAnnotation(failed))
}
