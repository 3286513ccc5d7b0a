package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/pkg/config"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

// Pinger is the readiness surface a dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FarmStay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FarmStay-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := map[string]string{"status": "ready"}
		ready := true
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
				status[name] = "unavailable"
				ready = false
				continue
			}
			status[name] = "ok"
		}

		if !ready {
			status["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
