package controllers

import (
	"net/http"

	"github.com/rmedina/stockroom-backend/api/responses"
	"github.com/rmedina/stockroom-backend/pkg/config"
	pkgerrors "github.com/rmedina/stockroom-backend/pkg/errors"
	"github.com/rmedina/stockroom-backend/pkg/kvstate"
	"github.com/rmedina/stockroom-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockroom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the state backend answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, slots kvstate.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockroom-Env", cfg.App.Env)

		if slots != nil {
			if err := slots.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "state backend unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
