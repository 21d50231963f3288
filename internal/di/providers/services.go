package providers

import (
	"github.com/samber/do/v2"

	"github.com/reusemarket/storefront/internal/config"
	"github.com/reusemarket/storefront/internal/logger"
	"github.com/reusemarket/storefront/internal/service"
)

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*StorefrontClientHandle](i)
	registry := do.MustInvoke[*FacetRegistryHandle](i)

	return service.NewCollectionService(client.Client, registry.Registry, cfg.Storefront.DefaultLocale, log.Logger), nil
}

// ProvideFacetService provides the facet definitions service.
func ProvideFacetService(i do.Injector) (*service.FacetService, error) {
	registry := do.MustInvoke[*FacetRegistryHandle](i)
	return service.NewFacetService(registry.Registry), nil
}
