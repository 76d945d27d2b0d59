package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerFind) }

func registerFind(r chi.Router, d deps.Deps) {
	r.Route("/api/find", func(r chi.Router) {
		r.Post("/toggle", handlers.ToggleFind(d))
		r.Post("/search", handlers.SearchFind(d))
		r.Post("/cancel", handlers.CancelFind(d))
		r.Post("/keyup", handlers.KeyUpFind(d))
	})
}
