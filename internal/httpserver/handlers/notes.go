package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scribbly/scribbly/internal/domain"
	"github.com/scribbly/scribbly/internal/httpserver/deps"
	"github.com/scribbly/scribbly/internal/notes"
)

type noteView struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	MatchedTags []string  `json:"matched_tags,omitempty"` // tags hit by the active query
	Content     string    `json:"content"`
	Favorite    bool      `json:"favorite"`
	Unsaved     bool      `json:"unsaved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toView(n *domain.Note, store *notes.Store) noteView {
	return noteView{
		ID:        n.ID,
		OwnerID:   n.OwnerID,
		Title:     n.Title,
		Category:  n.Category,
		Tags:      n.Tags,
		Content:   n.Content,
		Favorite:  n.Favorite,
		Unsaved:   store.Unsaved(n.ID),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toViews(list []*domain.Note, store *notes.Store) []noteView {
	views := make([]noteView, len(list))
	for i, n := range list {
		views[i] = toView(n, store)
	}
	return views
}

type notesResponse struct {
	Notes      []noteView `json:"notes"`
	Query      string     `json:"query"`
	Category   string     `json:"category"`
	SelectedID string     `json:"selected_id,omitempty"`
}

// ListNotes returns the visible projection of the cache. The session's
// search query and category filter apply by default; `q` and `category`
// query parameters override them for this request only, without
// touching session state.
func ListNotes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := d.Notes.SearchQuery()
		category := d.Notes.ActiveCategory()

		params := r.URL.Query()
		if params.Has("q") {
			query = params.Get("q")
		}
		if params.Has("category") {
			category = params.Get("category")
		}

		visible := domain.Visible(d.Notes.Notes(), query, category)
		views := toViews(visible, d.Notes)
		for i, n := range visible {
			views[i].MatchedTags = domain.MatchingTags(n, query)
		}

		resp := notesResponse{
			Notes:    views,
			Query:    query,
			Category: category,
		}
		if selected, ok := d.Notes.SelectedNote(); ok {
			resp.SelectedID = selected.ID
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// LoadAllNotes replaces the cache with every note across owners and
// returns it. Privileged identities only.
func LoadAllNotes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := d.Signal.Current()
		if ident == nil {
			writeError(w, domain.ErrUnauthenticated)
			return
		}

		if err := d.Notes.Load(r.Context(), ident.ID, notes.ScopeAll); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, notesResponse{
			Notes: toViews(d.Notes.Notes(), d.Notes),
		})
	}
}

type createNoteRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Tags     string `json:"tags"` // comma-separated, raw editor input
	Content  string `json:"content"`
	Favorite bool   `json:"favorite"`
}

func CreateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createNoteRequest
		if !decode(w, r, &req) {
			return
		}

		created, err := d.Notes.AddNote(r.Context(), notes.Draft{
			Title:    req.Title,
			Category: req.Category,
			Tags:     req.Tags,
			Content:  req.Content,
			Favorite: req.Favorite,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toView(created, d.Notes))
	}
}

type updateNoteRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Tags     *string `json:"tags"` // comma-separated, raw editor input
	Content  *string `json:"content"`
	Favorite *bool   `json:"favorite"`
}

// UpdateNote applies a partial update optimistically. A failed remote
// write still answers with the error, but the cached note keeps the new
// value and is flagged unsaved.
func UpdateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateNoteRequest
		if !decode(w, r, &req) {
			return
		}

		update := domain.NoteUpdate{
			Title:    req.Title,
			Category: req.Category,
			Content:  req.Content,
			Favorite: req.Favorite,
		}
		if req.Tags != nil {
			update.Tags = domain.SplitTags(*req.Tags)
		}
		if update.IsEmpty() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no fields to update"})
			return
		}

		id := chi.URLParam(r, "id")
		if err := d.Notes.UpdateNote(r.Context(), id, update); err != nil {
			writeError(w, err)
			return
		}

		note, ok := d.Notes.Note(id)
		if !ok {
			writeError(w, fmt.Errorf("note %s: %w", id, domain.ErrNotFound))
			return
		}
		writeJSON(w, http.StatusOK, toView(note, d.Notes))
	}
}

func DeleteNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Notes.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type editContentRequest struct {
	Content string `json:"content"`
}

// EditContent registers a keystroke-level content edit. The write back
// to the remote store is debounced; 202 means scheduled, not saved.
func EditContent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editContentRequest
		if !decode(w, r, &req) {
			return
		}

		if err := d.Notes.EditContent(chi.URLParam(r, "id"), req.Content); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// ExportNote hands out the note's content verbatim as a markdown
// download.
func ExportNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		content, err := d.Notes.ContentForExport(id)
		if err != nil {
			writeError(w, err)
			return
		}

		filename := id
		if note, ok := d.Notes.Note(id); ok && strings.TrimSpace(note.Title) != "" {
			filename = strings.TrimSpace(note.Title)
		}

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".md"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(content))
	}
}
