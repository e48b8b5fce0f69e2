package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/sneakerscr/storefront-backend/api/responses"
	"github.com/sneakerscr/storefront-backend/pkg/config"
	"github.com/sneakerscr/storefront-backend/pkg/db"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
	pkgredis "github.com/sneakerscr/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every backing dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		var failures error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				failures = multierr.Append(failures, err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				failures = multierr.Append(failures, err)
			}
		}

		if failures != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "dependencies unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
