package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
)

// DispatchEvent routes {event} with the raw request body as payload, the
// same way events from the host are routed.
func DispatchEvent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		if err := d.Events.Dispatch(r.Context(), chi.URLParam(r, "event"), json.RawMessage(payload)); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeState(w, d, http.StatusOK)
	}
}
