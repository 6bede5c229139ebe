package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
	"github.com/scribbly/scribbly/internal/httpserver/handlers"
)

func init() { Register(registerNotes) }

func registerNotes(r chi.Router, d deps.Deps) {
	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", handlers.ListNotes(d))
		r.Get("/all", handlers.LoadAllNotes(d))
		r.Post("/", handlers.CreateNote(d))
		r.Patch("/{id}", handlers.UpdateNote(d))
		r.Delete("/{id}", handlers.DeleteNote(d))
		r.Post("/{id}/content", handlers.EditContent(d))
		r.Get("/{id}/export", handlers.ExportNote(d))
	})
}
