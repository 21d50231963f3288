// Package di provides dependency injection configuration for the storefront server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reusemarket/storefront/internal/config"
	"github.com/reusemarket/storefront/internal/di/providers"
	"github.com/reusemarket/storefront/internal/logger"
	"github.com/reusemarket/storefront/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Facets
	do.Provide(injector, providers.ProvideFacetRegistry)

	// Storefront API
	do.Provide(injector, providers.ProvideStorefrontClient)

	// Business services
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideFacetService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.FacetRegistryHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StorefrontClientHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.FacetService](injector)

	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}
