package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerPreferences) }

func registerPreferences(r chi.Router, d deps.Deps) {
	r.Get("/api/preferences", handlers.GetPreferences(d))
	r.Put("/api/preferences", handlers.SavePreferences(d))
}
