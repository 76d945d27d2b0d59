package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
)

type findRequest struct {
	Term string `json:"term"`
	Key  string `json:"key"`
}

// ToggleFind opens or closes the find bar.
func ToggleFind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := d.Finder.Toggle(r.Context())
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// SearchFind searches the visible blog for the term.
func SearchFind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req findRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Finder.Search(r.Context(), req.Term); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Finder.State())
	}
}

// CancelFind stops the search and clears the selection.
func CancelFind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Finder.Cancel(r.Context()); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Finder.State())
	}
}

// KeyUpFind handles a key released in the find bar.
func KeyUpFind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req findRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Finder.KeyUp(r.Context(), req.Term, req.Key); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Finder.State())
	}
}
