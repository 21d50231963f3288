package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/reusemarket/storefront/internal/config"
	"github.com/reusemarket/storefront/internal/facet"
	"github.com/reusemarket/storefront/internal/logger"
)

// FacetRegistryHandle wraps the facet registry with shutdown capability.
type FacetRegistryHandle struct {
	*facet.Registry
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *FacetRegistryHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	h.Wait()
	return nil
}

// ProvideFacetRegistry provides the facet definitions, watching the
// definitions file for changes when configured.
func ProvideFacetRegistry(i do.Injector) (*FacetRegistryHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	registry, err := facet.NewRegistry(cfg.Facets.DefinitionsPath, log.Logger)
	if err != nil {
		return nil, err
	}

	handle := &FacetRegistryHandle{Registry: registry}
	if registry.Path() == "" {
		log.Info("Using built-in facet definitions", "groups", len(registry.Definitions()))
		return handle, nil
	}

	if cfg.Facets.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		if err := registry.Watch(ctx); err != nil {
			cancel()
			// Non-fatal: definitions are loaded, they just won't hot reload.
			log.Warn("Facet definitions watch unavailable", "error", err)
			return handle, nil
		}
		handle.cancel = cancel
	}

	return handle, nil
}
