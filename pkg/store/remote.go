package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/task"
)

// TaskPath is the REST resource holding the task list.
const TaskPath = "/api/task"

// StatusError reports a non-2xx response from the remote backend.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("store: %s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Remote talks to a REST backend exposing TaskPath. It never caches: the task
// store reloads the full list after every mutation.
type Remote struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration

	log *zap.Logger
}

var _ Adapter = (*Remote)(nil)

// NewRemote creates a remote adapter for baseURL, e.g. http://localhost:8000.
func NewRemote(baseURL string, timeout time.Duration, log *zap.Logger) *Remote {
	if log == nil {
		log = zap.NewNop()
	}
	return &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  http.DefaultClient,
		Timeout: timeout,
		log:     log.Named("remote"),
	}
}

func (r *Remote) Load(ctx context.Context) ([]task.Task, error) {
	var env task.Envelope
	body, err := r.do(ctx, http.MethodGet, r.collectionURL(), nil)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("store: decode task list: %w", err)
	}
	tasks := make([]task.Task, 0, len(env.Data))
	for _, rec := range env.Data {
		tasks = append(tasks, rec.Task())
	}
	return tasks, nil
}

func (r *Remote) Create(ctx context.Context, t task.Task) (task.Task, error) {
	body, err := r.do(ctx, http.MethodPost, r.collectionURL(), task.Body{Title: t.Title, Summary: t.Summary})
	if err != nil {
		return task.Task{}, err
	}
	rec, err := decodeRecord(body)
	if err != nil {
		return task.Task{}, err
	}
	created := rec.Task()
	r.log.Debug("created task", zap.String("id", created.ID))
	return created, nil
}

// Replace sends the full title/summary/status triple.
func (r *Remote) Replace(ctx context.Context, id string, t task.Task) error {
	status := t.Done
	_, err := r.do(ctx, http.MethodPut, r.itemURL(id), task.Body{Title: t.Title, Summary: t.Summary, Status: &status})
	return err
}

func (r *Remote) Remove(ctx context.Context, id string) error {
	_, err := r.do(ctx, http.MethodDelete, r.itemURL(id), nil)
	return err
}

func (r *Remote) collectionURL() string {
	return r.BaseURL + TaskPath
}

func (r *Remote) itemURL(id string) string {
	return r.BaseURL + TaskPath + "/" + url.PathEscape(id)
}

func (r *Remote) do(ctx context.Context, method, target string, payload any) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("store: %s %s: request timed out: %w", method, target, err)
		}
		return nil, fmt.Errorf("store: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("store: read response: %w", err)
	}
	r.log.Debug("response", zap.String("method", method), zap.String("url", target), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// decodeRecord accepts both a bare record and one wrapped in {"data": ...}.
func decodeRecord(body []byte) (task.Record, error) {
	var wrapped struct {
		Data *task.Record `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return *wrapped.Data, nil
	}
	var rec task.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return task.Record{}, fmt.Errorf("store: decode task: %w", err)
	}
	return rec, nil
}
