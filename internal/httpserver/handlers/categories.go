package handlers

import (
	"net/http"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
)

type categoriesResponse struct {
	Categories []string `json:"categories"`
	Active     string   `json:"active"`
}

func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, categoriesResponse{
			Categories: d.Notes.Categories(),
			Active:     d.Notes.ActiveCategory(),
		})
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category. A blank name is accepted and ignored,
// mirroring the store's no-op semantics.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if !decode(w, r, &req) {
			return
		}

		if err := d.Notes.AddCategory(r.Context(), req.Name); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, categoriesResponse{
			Categories: d.Notes.Categories(),
			Active:     d.Notes.ActiveCategory(),
		})
	}
}
