package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/finder"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/screen"
)

type stateResponse struct {
	screen.State
	Find finder.State `json:"findInPage"`
}

// State returns what the shell should render.
func State(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse{
			State: d.Screen.State(),
			Find:  d.Finder.State(),
		})
	}
}

func writeState(w http.ResponseWriter, d deps.Deps, status int) {
	writeJSON(w, status, stateResponse{
		State: d.Screen.State(),
		Find:  d.Finder.State(),
	})
}
