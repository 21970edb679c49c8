package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/ridefinderz-filters/api/middleware"
)

func TestSessionPingEchoesResolvedID(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/filter-sessions/"+id.String()+"/ping", nil)
	req = req.WithContext(middleware.WithSessionID(req.Context(), id))
	rec := httptest.NewRecorder()

	SessionPing().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"session_id":"`+id.String()+`"`) {
		t.Fatalf("expected session id in body, got %s", rec.Body.String())
	}
}

func TestPublicPingOmitsSession(t *testing.T) {
	rec := httptest.NewRecorder()
	PublicPing().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/public/ping", nil))

	if strings.Contains(rec.Body.String(), "session_id") {
		t.Fatalf("public ping should not mention a session: %s", rec.Body.String())
	}
}
