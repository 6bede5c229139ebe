package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
	"github.com/scribbly/scribbly/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", handlers.GetSession(d))
		r.Put("/selection", handlers.SetSelection(d))
		r.Put("/search", handlers.SetSearch(d))
		r.Put("/category", handlers.SetCategory(d))
	})
}
