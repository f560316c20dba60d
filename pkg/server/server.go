// Package server is a development REST backend for the remote strategy. It
// serves the task resource over a local adapter.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

// NewID hands out random ids, the way a database-backed service would.
func NewID([]task.Task) string {
	return uuid.NewString()
}

// Server exposes Adapter at store.TaskPath.
type Server struct {
	Adapter store.Adapter
	Log     *zap.Logger

	// OnListening is called with the bound address before serving.
	OnListening func(net.Addr)

	mu sync.Mutex
}

// New creates a server over adapter.
func New(adapter store.Adapter, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Adapter: adapter, Log: log.Named("server")}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route(store.TaskPath, func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Put("/{taskID}", s.handleReplace)
		r.Delete("/{taskID}", s.handleDelete)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if s.OnListening != nil {
		s.OnListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.Adapter.Load(r.Context())
	if err != nil {
		s.Log.Error("load failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}
	env := task.Envelope{Data: make([]task.Record, 0, len(tasks))}
	for _, t := range tasks {
		env.Data = append(env.Data, task.ToRecord(t))
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body task.Body
	if err := decodeBody(r, &body); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "Invalid task data")
		return
	}
	if msg := validate(body); msg != "" {
		writeErrorJSON(w, http.StatusBadRequest, msg)
		return
	}

	t := task.New(body.Title, body.Summary)
	if body.Status != nil {
		t.Done = *body.Status
	}

	s.mu.Lock()
	created, err := s.Adapter.Create(r.Context(), t)
	s.mu.Unlock()
	if err != nil {
		s.Log.Error("create failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]task.Record{"data": task.ToRecord(created)})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	var body task.Body
	if err := decodeBody(r, &body); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "Invalid task data")
		return
	}
	if msg := validate(body); msg != "" {
		writeErrorJSON(w, http.StatusBadRequest, msg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.Adapter.Load(r.Context())
	if err != nil {
		s.Log.Error("load failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "Failed to update task")
		return
	}
	i := task.IndexOf(tasks, id)
	if i < 0 {
		writeErrorJSON(w, http.StatusNotFound, "Task not found")
		return
	}
	t := tasks[i]
	t.Title, t.Summary = body.Title, body.Summary
	if body.Status != nil {
		t.Done = *body.Status
	}
	if err := s.Adapter.Replace(r.Context(), id, t); err != nil {
		s.writeStoreError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]task.Record{"data": task.ToRecord(t)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	s.mu.Lock()
	err := s.Adapter.Remove(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		s.writeStoreError(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted", "id": id})
}

func (s *Server) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeErrorJSON(w, http.StatusNotFound, "Task not found")
		return
	}
	s.Log.Error(op+" failed", zap.Error(err))
	writeErrorJSON(w, http.StatusInternalServerError, "Failed to "+op+" task")
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// validate only requires a title; summaries are optional in storage.
func validate(b task.Body) string {
	return app.ValidateTitle(b.Title)
}

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
