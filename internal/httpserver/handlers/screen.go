package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/domain"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
)

// ShowAddBlog opens the add blog panel, pre-filled when the body carries a
// url or user.
func ShowAddBlog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.PreFill
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var preFill *domain.PreFill
		if req.URL != "" || req.User != "" {
			preFill = &domain.PreFill{URL: domain.SanitizeURL(req.URL), User: req.User}
		}
		if err := d.Screen.ShowAddBlog(r.Context(), preFill); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeState(w, d, http.StatusOK)
	}
}

// ShowPreferences opens the preferences panel.
func ShowPreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Screen.ShowPreferences(r.Context()); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeState(w, d, http.StatusOK)
	}
}
