package vikunja

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewire/notewire/internal/board"
	"github.com/notewire/notewire/internal/domain"
	"github.com/notewire/notewire/internal/platform/boardserver"
)

const (
	inboxID     = int64(1)
	confirmedID = int64(4)
	doneID      = int64(5)
	testToken   = "opaque-test-token"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBoard starts an in-memory board and a client wired against it.
func newBoard(t *testing.T) (*boardserver.Server, *Client) {
	t.Helper()

	srv := boardserver.New(boardserver.Config{
		ProjectID: 1,
		ViewID:    4,
		BucketIDs: []int64{inboxID, confirmedID, doneID},
		Token:     testToken,
	}, testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := New(Config{
		BaseURL:   ts.URL,
		Token:     testToken,
		ProjectID: 1,
		ViewID:    4,
		BucketIDs: map[domain.Bucket]int64{
			domain.BucketInbox:     inboxID,
			domain.BucketConfirmed: confirmedID,
			domain.BucketDone:      doneID,
		},
	}, testLogger())
	require.NoError(t, err)
	return srv, client
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	valid := Config{
		BaseURL:   "https://board.example.com",
		Token:     "tok",
		ProjectID: 1,
		ViewID:    4,
		BucketIDs: map[domain.Bucket]int64{
			domain.BucketInbox:     1,
			domain.BucketConfirmed: 4,
			domain.BucketDone:      5,
		},
	}

	cfg := valid
	cfg.Token = ""
	_, err := New(cfg, testLogger())
	assert.ErrorIs(t, err, ErrMissingToken)

	cfg = valid
	cfg.BaseURL = ""
	_, err = New(cfg, testLogger())
	assert.ErrorIs(t, err, ErrMissingBaseURL)

	cfg = valid
	cfg.BucketIDs = map[domain.Bucket]int64{domain.BucketInbox: 1}
	_, err = New(cfg, testLogger())
	assert.ErrorIs(t, err, ErrMissingBucket)
}

func TestNewRejectsExpiredJWT(t *testing.T) {
	t.Parallel()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("board-secret"))
	require.NoError(t, err)

	cfg := Config{
		BaseURL:   "https://board.example.com",
		Token:     signed,
		ProjectID: 1,
		ViewID:    4,
		BucketIDs: map[domain.Bucket]int64{
			domain.BucketInbox:     1,
			domain.BucketConfirmed: 4,
			domain.BucketDone:      5,
		},
	}
	_, err = New(cfg, testLogger())
	assert.ErrorIs(t, err, ErrExpiredToken)

	// A live JWT and an opaque token are both fine.
	live := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	cfg.Token, err = live.SignedString([]byte("board-secret"))
	require.NoError(t, err)
	_, err = New(cfg, testLogger())
	assert.NoError(t, err)

	cfg.Token = "opaque"
	_, err = New(cfg, testLogger())
	assert.NoError(t, err)
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	srv, client := newBoard(t)
	id, err := client.CreateTask(context.Background(), domain.BucketInbox, "Buy milk", "Find where to buy milk")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, ok := srv.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", snap.Title)
	assert.Equal(t, inboxID, snap.BucketID)
	assert.False(t, snap.Done)
}

func TestListTasksReturnsOnlyRequestedBucket(t *testing.T) {
	t.Parallel()

	srv, client := newBoard(t)
	srv.Seed(inboxID, "unconfirmed", "waiting for a human")
	srv.Seed(confirmedID, "confirmed one", "find the capital of France")

	records, err := client.ListTasks(context.Background(), domain.BucketConfirmed)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.BucketConfirmed, records[0].Bucket)
	assert.Equal(t, "confirmed one", records[0].Title)
	assert.Equal(t, "find the capital of France", records[0].Description)
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	srv, client := newBoard(t)
	id := srv.Seed(confirmedID, "t", "original instruction")

	desc := "original instruction\n\nExecution Results:\nParis"
	err := client.UpdateTask(context.Background(), "1", board.UpdateFields{Description: &desc})
	require.NoError(t, err)

	snap, _ := srv.Snapshot(id)
	assert.Equal(t, desc, snap.Description)
	assert.Equal(t, "t", snap.Title, "partial update must not clear other fields")
}

func TestUpdateTaskNotFound(t *testing.T) {
	t.Parallel()

	_, client := newBoard(t)
	desc := "x"
	err := client.UpdateTask(context.Background(), "999", board.UpdateFields{Description: &desc})
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrNotFound)
	assert.True(t, board.IsWriteError(err))
}

func TestMoveTaskIsIdempotent(t *testing.T) {
	t.Parallel()

	srv, client := newBoard(t)
	id := srv.Seed(confirmedID, "t", "d")

	err := client.MoveTask(context.Background(), "1", domain.BucketDone)
	require.NoError(t, err)

	snap, _ := srv.Snapshot(id)
	assert.Equal(t, doneID, snap.BucketID)
	assert.True(t, snap.Done, "a task moved to done is flagged done")

	// Second move: non-fatal idempotency signal, record stays put.
	err = client.MoveTask(context.Background(), "1", domain.BucketDone)
	require.Error(t, err)
	assert.True(t, board.IsAlreadyMoved(err))

	snap, _ = srv.Snapshot(id)
	assert.Equal(t, doneID, snap.BucketID)
}

func TestUnauthorizedMapsToErrUnauthorized(t *testing.T) {
	t.Parallel()

	srv := boardserver.New(boardserver.Config{
		ProjectID: 1,
		ViewID:    4,
		BucketIDs: []int64{inboxID, confirmedID, doneID},
		Token:     "the-right-token",
	}, testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := New(Config{
		BaseURL:   ts.URL,
		Token:     "the-wrong-token",
		ProjectID: 1,
		ViewID:    4,
		BucketIDs: map[domain.Bucket]int64{
			domain.BucketInbox:     inboxID,
			domain.BucketConfirmed: confirmedID,
			domain.BucketDone:      doneID,
		},
	}, testLogger())
	require.NoError(t, err)

	_, err = client.CreateTask(context.Background(), domain.BucketInbox, "t", "d")
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrUnauthorized)
}
