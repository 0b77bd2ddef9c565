package controllers

import (
	"context"
	"net/http"

	"github.com/lmarquez/storefront-backend/api/responses"
	"github.com/lmarquez/storefront-backend/pkg/config"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when the state store and the upstream
// catalog both answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, stateStore, catalog pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		checks := map[string]string{}
		failed := false

		for name, p := range map[string]pinger{
			"redis":   stateStore,
			"catalog": catalog,
		} {
			if p == nil {
				checks[name] = "not configured"
				failed = true
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				checks[name] = err.Error()
				failed = true
				continue
			}
			checks[name] = "ok"
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
