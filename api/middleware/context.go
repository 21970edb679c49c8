package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/ridefinderz-filters/api/responses"
	pkgerrors "github.com/angelmondragon/ridefinderz-filters/pkg/errors"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
)

type contextKey string

const (
	ctxSessionID contextKey = "filter_session_id"

	sessionIDParam = "sessionId"
)

// SessionIDFromContext returns the filter session bound by SessionContext.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(ctxSessionID).(uuid.UUID)
	return id, ok
}

// WithSessionID injects the filter session identifier into the context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, id)
}

// SessionContext parses the {sessionId} route parameter, rejects malformed
// ids and tags the request logger with the session.
func SessionContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, sessionIDParam)
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id"))
				return
			}

			ctx := WithSessionID(r.Context(), id)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
