// Package boardserver provides a small in-memory board speaking the same
// REST dialect the vikunja client consumes. It backs `notewire board
// serve` for local development and the board client tests; it is not a
// durable store.
package boardserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config describes the single project/view the server exposes.
type Config struct {
	ProjectID int64
	ViewID    int64

	// BucketIDs enumerates the kanban columns, in display order.
	BucketIDs []int64

	// Token, when set, is required as a Bearer credential on every call.
	Token string
}

// Task is the server's record shape, also used on the wire.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BucketID    int64  `json:"bucket_id"`
	Done        bool   `json:"done"`
}

type bucketView struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// Server holds the board state behind a mutex; every handler touches the
// state under the lock, so each HTTP call is atomic.
type Server struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*Task
}

// New creates an empty board server.
func New(cfg Config, logger *slog.Logger) *Server {
	if len(cfg.BucketIDs) == 0 {
		cfg.BucketIDs = []int64{1, 2, 3}
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		nextID: 1,
		tasks:  make(map[int64]*Task),
	}
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.cfg.Token != "" {
		r.Use(s.authenticate)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Put("/projects/{projectID}/tasks", s.createTask)
		r.Get("/projects/{projectID}/views/{viewID}/tasks", s.listView)
		r.Get("/tasks/{taskID}", s.getTask)
		r.Post("/tasks/{taskID}", s.updateTask)
	})

	return r
}

// Seed inserts a task directly, for tests and demos. It returns the
// assigned ID.
func (s *Server) Seed(bucketID int64, title, description string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.tasks[id] = &Task{
		ID:          id,
		Title:       title,
		Description: description,
		BucketID:    bucketID,
	}
	return id
}

// Snapshot returns a copy of a task, or false if it does not exist.
func (s *Server) Snapshot(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if got != s.cfg.Token {
			http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"message":"bad request"}`, http.StatusBadRequest)
		return
	}
	if in.Title == "" {
		http.Error(w, `{"message":"title required"}`, http.StatusBadRequest)
		return
	}
	if in.BucketID == 0 {
		in.BucketID = s.cfg.BucketIDs[0]
	}

	s.mu.Lock()
	in.ID = s.nextID
	s.nextID++
	s.tasks[in.ID] = &in
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) listView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	buckets := make([]bucketView, 0, len(s.cfg.BucketIDs))
	for _, bid := range s.cfg.BucketIDs {
		bv := bucketView{ID: bid, Title: "Bucket " + strconv.FormatInt(bid, 10), Tasks: []Task{}}
		for _, t := range s.tasks {
			if t.BucketID == bid {
				bv.Tasks = append(bv.Tasks, *t)
			}
		}
		buckets = append(buckets, bv)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		http.Error(w, `{"message":"bad task id"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	t, ok := s.tasks[id]
	var out Task
	if ok {
		out = *t
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, `{"message":"task not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// updateTask applies a partial update: only fields present in the request
// body are touched.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		http.Error(w, `{"message":"bad task id"}`, http.StatusBadRequest)
		return
	}

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, `{"message":"bad request"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	t, ok := s.tasks[id]
	var out Task
	if ok {
		if raw, present := patch["title"]; present {
			_ = json.Unmarshal(raw, &t.Title)
		}
		if raw, present := patch["description"]; present {
			_ = json.Unmarshal(raw, &t.Description)
		}
		if raw, present := patch["bucket_id"]; present {
			_ = json.Unmarshal(raw, &t.BucketID)
		}
		if raw, present := patch["done"]; present {
			_ = json.Unmarshal(raw, &t.Done)
		}
		out = *t
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, `{"message":"task not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
