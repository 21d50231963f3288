// Package providers contains dependency injection providers for the storefront server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/reusemarket/storefront/internal/config"
	"github.com/reusemarket/storefront/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting storefront server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"shop", cfg.Storefront.Domain,
		"api_version", cfg.Storefront.APIVersion,
		"default_locale", cfg.Storefront.DefaultLocale,
	)

	return log, nil
}
