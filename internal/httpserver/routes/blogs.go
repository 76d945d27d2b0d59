package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerBlogs) }

func registerBlogs(r chi.Router, d deps.Deps) {
	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", handlers.ListBlogs(d))
		r.Post("/", handlers.AddBlog(d))
		r.Post("/refresh-names", handlers.RefreshNames(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", handlers.RemoveBlog(d))
			r.Post("/switch", handlers.SwitchBlog(d))
			r.Post("/edit", handlers.EditBlog(d))
			r.Post("/icon-color", handlers.RandomIconColor(d))
			r.Get("/password", handlers.GetPassword(d))
			r.Put("/password", handlers.SetPassword(d))
		})
	})
}
