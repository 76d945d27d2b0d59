package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/mw"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.Logger)).Get("/infra", handlers.Infra(d))
}
