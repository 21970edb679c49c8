package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ridefinderz-filters/api/controllers"
	"github.com/angelmondragon/ridefinderz-filters/api/middleware"
	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/internal/sessions"
	"github.com/angelmondragon/ridefinderz-filters/pkg/config"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
	"github.com/angelmondragon/ridefinderz-filters/pkg/redis"
)

// NewRouter mounts the health probes, the metrics endpoint and the filter
// session API. metricsHandler may be nil; idempotencyStore may be nil, in
// which case retried requests are not deduplicated.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	limits filters.Limits,
	sessionService sessions.Service,
	idempotencyStore redis.IdempotencyStore,
	metricsHandler http.Handler,
	deps ...controllers.Dependency,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, deps...))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	idempotent := middleware.Idempotency(idempotencyStore, cfg.Filters.SessionTTL, logg)

	r.Route("/api/v1/filter-sessions", func(r chi.Router) {
		r.With(idempotent).Post("/", controllers.CreateFilterSession(sessionService, limits, logg))

		r.Route("/{sessionId}", func(r chi.Router) {
			r.Use(middleware.SessionContext(logg))

			r.Get("/", controllers.GetFilterSession(sessionService, logg))
			r.Delete("/", controllers.DeleteFilterSession(sessionService, logg))
			r.Get("/ping", controllers.SessionPing())

			r.With(idempotent).Post("/toggle", controllers.ToggleFilter(sessionService, logg))
			r.With(idempotent).Post("/price", controllers.SetPriceField(sessionService, logg))
			r.Post("/slider/drag", controllers.DragSlider(sessionService, logg))
			r.With(idempotent).Post("/slider/commit", controllers.CommitSlider(sessionService, logg))
			r.With(idempotent).Post("/reset", controllers.ResetFilters(sessionService, logg))
			r.Post("/sync", controllers.SyncFilters(sessionService, limits, logg))
			r.Post("/panel/open", controllers.OpenPanel(sessionService, logg))
			r.Post("/panel/close", controllers.ClosePanel(sessionService, logg))
		})
	})

	return r
}
