package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
	"github.com/scribbly/scribbly/internal/httpserver/handlers"
)

func init() { Register(registerIdentity) }

func registerIdentity(r chi.Router, d deps.Deps) {
	r.Post("/api/identity", handlers.SetIdentity(d))
	r.Delete("/api/identity", handlers.ClearIdentity(d))
}
