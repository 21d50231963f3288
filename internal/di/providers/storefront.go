package providers

import (
	"github.com/samber/do/v2"

	"github.com/reusemarket/storefront/internal/config"
	"github.com/reusemarket/storefront/internal/logger"
	"github.com/reusemarket/storefront/internal/storefront"
)

// StorefrontClientHandle wraps the Storefront API client with shutdown capability.
type StorefrontClientHandle struct {
	*storefront.Client
}

// Shutdown implements do.Shutdownable.
func (h *StorefrontClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideStorefrontClient provides the rate-limited Storefront API client.
// Requested metafields follow the live facet definitions.
func ProvideStorefrontClient(i do.Injector) (*StorefrontClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	registry := do.MustInvoke[*FacetRegistryHandle](i)

	client, err := storefront.New(storefront.Config{
		Domain:             cfg.Storefront.Domain,
		APIVersion:         cfg.Storefront.APIVersion,
		PublicToken:        cfg.Storefront.PublicToken,
		Timeout:            cfg.Storefront.Timeout,
		RPS:                cfg.Storefront.RPS,
		Burst:              cfg.Storefront.Burst,
		PageSize:           cfg.Storefront.PageSize,
		MetafieldNamespace: cfg.Storefront.MetafieldNamespace,
	}, log.Logger, storefront.WithMetafieldKeys(func() []string {
		return registry.Definitions().Keys()
	}))
	if err != nil {
		return nil, err
	}

	if cfg.Storefront.PublicToken == "" {
		log.Warn("STOREFRONT_PUBLIC_TOKEN is empty; only public shop data will be readable")
	}
	log.Info("Storefront client ready", "endpoint", client.Config().Endpoint())

	return &StorefrontClientHandle{Client: client}, nil
}
