package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerState) }

func registerState(r chi.Router, d deps.Deps) {
	r.Get("/api/state", handlers.State(d))
}
