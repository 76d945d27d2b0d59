package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerScreen) }

func registerScreen(r chi.Router, d deps.Deps) {
	r.Post("/api/screen/add-blog", handlers.ShowAddBlog(d))
	r.Post("/api/screen/preferences", handlers.ShowPreferences(d))
	r.Post("/api/events/{event}", handlers.DispatchEvent(d))
}
