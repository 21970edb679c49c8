package controllers

import (
	"net/http"

	"github.com/angelmondragon/ridefinderz-filters/api/middleware"
	"github.com/angelmondragon/ridefinderz-filters/api/responses"
)

type pingResponse struct {
	Scope     string `json:"scope"`
	Status    string `json:"status"`
	SessionID string `json:"session_id,omitempty"`
}

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, pingResponse{Scope: "public", Status: "ok"})
	}
}

// SessionPing confirms a session route resolved its id without touching the
// widget, so a client can probe routing without refreshing the session's
// idle timer.
func SessionPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := pingResponse{Scope: "session", Status: "ok"}
		if id, ok := middleware.SessionIDFromContext(r.Context()); ok {
			resp.SessionID = id.String()
		}
		responses.WriteSuccess(w, resp)
	}
}
