package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
)

var errNoRedis = errors.New("client not initialized")

type componentStatus struct {
	OK          bool   `json:"ok"`
	BlogsLoaded *int   `json:"blogs_loaded,omitempty"`
	LastRefresh string `json:"last_refresh,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every collaborator of the application.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs := d.Registry.Count()
		lastRefresh := "never"
		if t := d.Registry.LastRefresh(); !t.IsZero() {
			lastRefresh = t.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"registry": {
				OK:          !d.Registry.LastRefresh().IsZero(),
				BlogsLoaded: &blogs,
				LastRefresh: lastRefresh,
				Mode:        string(d.Screen.State().Screen.Kind),
			},
			"redis":    redisStatus(r, d),
			"keychain": keychainStatus(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "critical" // no store, no host bridge
	}
	if keychain, ok := components["keychain"]; ok && !keychain.OK {
		return "degraded" // passwords are not remembered
	}
	return "optimal"
}

func redisStatus(r *http.Request, d deps.Deps) componentStatus {
	if err := pingRedis(r.Context(), d); err != nil {
		return componentStatus{
			OK:     false,
			Impact: "blogs-and-host-bridge-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true}
}

func keychainStatus(d deps.Deps) componentStatus {
	if d.Credentials == nil || !d.Credentials.Available() {
		return componentStatus{
			OK:     false,
			Mode:   "backend-absent",
			Impact: "passwords-not-stored",
		}
	}
	return componentStatus{OK: true, Mode: "os-keychain"}
}
