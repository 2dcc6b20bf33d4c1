package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/envatex/storefront-gateway/api/responses"
	"github.com/envatex/storefront-gateway/pkg/config"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
	"github.com/envatex/storefront-gateway/pkg/logger"
)

const envHeader = "X-Envatex-Env"

// Pinger is the readiness surface a collaborator exposes.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the gateway's collaborators. A nil pinger is treated
// as not configured and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, upstreamP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		var combined error
		if upstreamP != nil {
			if err := upstreamP.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
			}
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpstream, combined, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
