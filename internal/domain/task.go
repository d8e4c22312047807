package domain

import (
	"strings"
	"unicode/utf8"
)

// Field bounds applied to model output before a candidate is accepted.
// The model response is untrusted input; anything longer is clipped
// rather than rejected so a verbose model does not lose work.
const (
	MaxCandidateTitleLen       = 500
	MaxCandidateDescriptionLen = 8000
)

// Markers used when annotating a task description with an execution
// outcome. The original instruction text is always preserved above the
// marker, so an annotated description is a superset of the original.
const (
	resultMarker  = "\n\nExecution Results:\n"
	failureMarker = "\n\nExecution Failed:\n"
)

// TaskCandidate is an unconfirmed task proposal extracted from a source
// unit. It only becomes durable once the ingest pass creates a board
// record from it.
type TaskCandidate struct {
	// Title is the quote or statement from the note that suggested the task.
	Title string `json:"title"`

	// Description is the instruction text a downstream executor can act on.
	Description string `json:"description"`

	// SearchQueries optionally carries the web search queries the model
	// suggested for the task, as free text.
	SearchQueries string `json:"web_search_queries,omitempty"`
}

// NewTaskCandidate builds a validated candidate from raw model output,
// clipping over-long fields to their bounds.
func NewTaskCandidate(title, description, searchQueries string) (TaskCandidate, error) {
	c := TaskCandidate{
		Title:         clip(strings.TrimSpace(title), MaxCandidateTitleLen),
		Description:   clip(strings.TrimSpace(description), MaxCandidateDescriptionLen),
		SearchQueries: clip(strings.TrimSpace(searchQueries), MaxCandidateDescriptionLen),
	}
	if err := c.Validate(); err != nil {
		return TaskCandidate{}, err
	}
	return c, nil
}

// Validate checks that the candidate carries the required fields.
func (c TaskCandidate) Validate() error {
	if c.Title == "" {
		return ErrEmptyCandidateTitle
	}
	if c.Description == "" {
		return ErrEmptyCandidateDescription
	}
	return nil
}

// BoardDescription renders the description to store on the board record,
// appending the suggested search queries when the model provided any.
func (c TaskCandidate) BoardDescription() string {
	if c.SearchQueries == "" {
		return c.Description
	}
	return c.Description + "\n\nSuggested searches: " + c.SearchQueries
}

// TaskStatus is the logical state of a task, derived from its bucket and
// any execution outcome recorded in its description.
type TaskStatus string

const (
	TaskStatusExtracted TaskStatus = "extracted"
	TaskStatusConfirmed TaskStatus = "confirmed"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// TaskRecord is the persistent entity on the board. The ID is assigned by
// the board, is opaque to this application, and never changes across
// bucket moves.
type TaskRecord struct {
	ID          string
	Title       string
	Description string
	Bucket      Bucket
}

// Validate checks that the record has an ID and a known bucket.
func (r TaskRecord) Validate() error {
	if r.ID == "" {
		return ErrEmptyTaskID
	}
	if !r.Bucket.Valid() {
		return ErrInvalidBucket
	}
	return nil
}

// Status derives the logical task status from the bucket and the outcome
// annotations present in the description.
func (r TaskRecord) Status() TaskStatus {
	switch r.Bucket {
	case BucketDone:
		return TaskStatusCompleted
	case BucketConfirmed:
		if HasFailureAnnotation(r.Description) {
			return TaskStatusFailed
		}
		return TaskStatusConfirmed
	default:
		return TaskStatusExtracted
	}
}

// AnnotateResult appends an execution result to a description, keeping
// the original instruction text intact.
func AnnotateResult(description, summary string) string {
	return description + resultMarker + summary
}

// AnnotateFailure appends a human-readable failure reason to a
// description, keeping the original instruction text intact.
func AnnotateFailure(description, reason string) string {
	return description + failureMarker + reason
}

// HasResultAnnotation reports whether a description carries an execution
// result. Every record in the Done bucket must satisfy this.
func HasResultAnnotation(description string) bool {
	return strings.Contains(description, resultMarker)
}

// HasFailureAnnotation reports whether a description carries a recorded
// execution failure.
func HasFailureAnnotation(description string) bool {
	return strings.Contains(description, failureMarker)
}

// clip bounds a field to max bytes, backing off to a rune boundary so
// the truncated text stays valid UTF-8.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
