package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/events"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeFailure maps err to a status code and writes it.
func writeFailure(w http.ResponseWriter, d deps.Deps, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownBlog), errors.Is(err, domain.ErrBlogNotFound),
		errors.Is(err, events.ErrUnknownEvent):
		status = http.StatusNotFound
	case errors.Is(err, events.ErrInvalidPayload):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		d.Logger.Errorf("request failed: %v", err)
	}
	writeError(w, status, err.Error())
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid body: %w", err)
	}
	return nil
}

// blogParam resolves the {id} URL parameter against the registry.
func blogParam(d deps.Deps, r *http.Request) (*domain.Blog, error) {
	id := chi.URLParam(r, "id")
	blog, ok := d.Registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBlog, id)
	}
	return blog, nil
}
