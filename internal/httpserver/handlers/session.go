package handlers

import (
	"net/http"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
)

type sessionResponse struct {
	SelectedID string `json:"selected_id,omitempty"`
	Query      string `json:"query"`
	Category   string `json:"category"`
}

func sessionState(d deps.Deps) sessionResponse {
	resp := sessionResponse{
		Query:    d.Notes.SearchQuery(),
		Category: d.Notes.ActiveCategory(),
	}
	if selected, ok := d.Notes.SelectedNote(); ok {
		resp.SelectedID = selected.ID
	}
	return resp
}

func GetSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionState(d))
	}
}

type selectionRequest struct {
	NoteID string `json:"note_id"` // empty clears the selection
}

func SetSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectionRequest
		if !decode(w, r, &req) {
			return
		}

		if err := d.Notes.SelectNote(req.NoteID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionState(d))
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

func SetSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if !decode(w, r, &req) {
			return
		}

		d.Notes.SetSearchQuery(req.Query)
		writeJSON(w, http.StatusOK, sessionState(d))
	}
}

type categoryRequest struct {
	Name string `json:"name"` // empty disables the category filter
}

func SetCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if !decode(w, r, &req) {
			return
		}

		d.Notes.SetActiveCategory(req.Name)
		writeJSON(w, http.StatusOK, sessionState(d))
	}
}
