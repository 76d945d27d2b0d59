package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
)

type refreshResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// RefreshNames triggers a manual refresh of every blog name
func RefreshNames(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.NameRefresh <- struct{}{}:
			d.Logger.Info("manual name refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, refreshResponse{Triggered: true, Message: "name refresh triggered"})
		default:
			d.Logger.Warn("name refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, refreshResponse{Message: "name refresh already in progress, please wait"})
		}
	}
}
