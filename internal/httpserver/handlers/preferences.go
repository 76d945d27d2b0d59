package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

// GetPreferences returns the stored preferences. Defaults are served when
// Redis cannot be read.
func GetPreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs, err := d.Store.GetPreferences(r.Context())
		if err != nil {
			d.Logger.Warn("serving default preferences", logger.Error(err))
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

// SavePreferences replaces the stored preferences. Fields missing from the
// body keep their current value.
func SavePreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs, err := d.Store.GetPreferences(r.Context())
		if err != nil {
			writeFailure(w, d, err)
			return
		}
		if err := decodeBody(r, &prefs); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Store.SavePreferences(r.Context(), prefs); err != nil {
			writeFailure(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}
