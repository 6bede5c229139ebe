package handlers

import (
	"net/http"
	"strings"

	"github.com/scribbly/scribbly/internal/httpserver/deps"
)

type identityRequest struct {
	UserID     string `json:"user_id"`
	Privileged bool   `json:"privileged"`
}

// SetIdentity switches the active identity. The notes store watches the
// signal, so the switch triggers a full reload in the background; the
// handler itself returns as soon as the identity is set.
func SetIdentity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identityRequest
		if !decode(w, r, &req) {
			return
		}

		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id is required"})
			return
		}

		d.Signal.Set(userID, req.Privileged)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearIdentity signs the identity out; the notes store drops its cache.
func ClearIdentity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Signal.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}
