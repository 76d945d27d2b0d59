package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once Redis answers and the registry was loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pingRedis(r.Context(), d); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "redis: " + err.Error()})
			return
		}
		if d.Registry.LastRefresh().IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "blogs not loaded yet"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}

func pingRedis(parent context.Context, d deps.Deps) error {
	if d.RedisClient == nil {
		return errNoRedis
	}
	ctx, cancel := context.WithTimeout(parent, time.Second)
	defer cancel()
	return d.RedisClient.Ping(ctx).Err()
}
