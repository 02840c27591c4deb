package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/AdejohOS/feather-mart-sub001/api/responses"
	"github.com/AdejohOS/feather-mart-sub001/pkg/config"
	"github.com/AdejohOS/feather-mart-sub001/pkg/db"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FeatherMart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores. Redis is reported but never fails
// readiness: guest state degrades to empty reads when it is down, while the
// database going away takes the whole API with it.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FeatherMart-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{"db": "ok", "redis": "ok"}

		if dbP == nil {
			checks["db"] = "unavailable"
		} else if err := dbP.Ping(ctx); err != nil {
			checks["db"] = "unavailable"
			if logg != nil {
				logg.Error(ctx, "readiness db ping failed", err)
			}
		}

		if redisP == nil {
			checks["redis"] = "unavailable"
		} else if err := redisP.Ping(ctx); err != nil {
			checks["redis"] = "degraded"
			if logg != nil {
				logg.Warn(logg.WithField(ctx, "ping_error", err.Error()), "readiness redis ping failed")
			}
		}

		status := http.StatusOK
		state := "ready"
		if checks["db"] != "ok" {
			status = http.StatusServiceUnavailable
			state = "unready"
		}

		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
