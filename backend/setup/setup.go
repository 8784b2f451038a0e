package setup

import (
	"context"
	"errors"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/backend/configmap"
	"github.com/GlintPay/storefront/backend/file"
	"github.com/GlintPay/storefront/backend/gist"
	"github.com/GlintPay/storefront/backend/git"
	"github.com/GlintPay/storefront/backend/postgres"
	"github.com/GlintPay/storefront/config"
	"github.com/rs/zerolog/log"
)

// Init builds the backends the configuration enables, in priority order. A backend that fails to
// initialise is left out of the chain and its error returned alongside the usable ones.
func Init(ctx context.Context, appConfig config.ApplicationConfiguration) (backend.Backends, error) {
	var candidates backend.Backends

	if appConfig.Gist.IsConfigured() {
		log.Info().Msg("Enabling Gist backend")
		candidates = append(candidates, &gist.Backend{})
	} else {
		log.Info().Msg("Gist backend is not configured")
	}

	if appConfig.Git.IsConfigured() {
		log.Info().Msg("Enabling Git backend")
		candidates = append(candidates, &git.Backend{EnableTrace: appConfig.Tracing.Enabled})
	} else {
		log.Info().Msg("Git backend is not configured")
	}

	if appConfig.Postgres.IsConfigured() {
		log.Info().Msg("Enabling Postgres backend")
		candidates = append(candidates, &postgres.Backend{})
	} else {
		log.Info().Msg("Postgres backend is not configured")
	}

	if appConfig.ConfigMap.Enabled {
		log.Info().Msg("Enabling ConfigMap backend")
		candidates = append(candidates, &configmap.Backend{})
	}

	switch {
	case appConfig.File.Disabled:
		log.Info().Msg("File backend is disabled")
	case appConfig.Server.IsProduction() && !appConfig.File.AllowInProduction:
		log.Warn().Msg("File backend is disabled in production")
	default:
		log.Info().Msg("Enabling File backend")
		candidates = append(candidates, &file.Backend{})
	}

	var backends backend.Backends
	var errs []error

	for _, each := range candidates {
		if backendErr := each.Init(ctx, appConfig); backendErr != nil {
			log.Error().Err(backendErr).Stack().Msgf("Could not initialise %s backend", each.Name())
			errs = append(errs, backendErr)
			continue
		}
		backends = append(backends, each)
	}

	if len(backends) == 0 {
		log.Warn().Msg("No storage backend available, the default document will be served and saves will fail")
	}

	return backends.Sorted(), errors.Join(errs...)
}
