package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/ridefinderz-filters/api/responses"
	pkgerrors "github.com/angelmondragon/ridefinderz-filters/pkg/errors"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
)

const (
	envHeader        = "X-RideFinderz-Env"
	readinessTimeout = 2 * time.Second
)

// Dependency is a named downstream checked by the readiness probe.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and reports the first failure as a
// dependency error.
func HealthReady(env string, logg *logger.Logger, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, env)
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		for _, dep := range deps {
			if dep.Ping == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, dep.Name+" unavailable").
					WithDetails(map[string]string{"dependency": dep.Name}))
				return
			}
			checks[dep.Name] = "ok"
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
