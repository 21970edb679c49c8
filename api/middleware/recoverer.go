package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/ridefinderz-filters/api/responses"
	pkgerrors "github.com/angelmondragon/ridefinderz-filters/pkg/errors"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
)

// Recoverer turns a handler panic into a 500 envelope. A panic while a widget
// is mid-operation leaves that session's lock released by its deferred unlock,
// so the session stays usable.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					fields := map[string]any{"panic": rec, "path": r.URL.Path}
					if id, ok := SessionIDFromContext(ctx); ok {
						fields["session_id"] = id.String()
					}
					logg.Error(logg.WithFields(ctx, fields), "request.panic", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
