package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
	"github.com/scribbly/scribbly/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Get("/api/categories", handlers.ListCategories(d))
	r.Post("/api/categories", handlers.CreateCategory(d))
}
