package service

import (
	"time"

	"github.com/reusemarket/storefront/internal/facet"
)

// FacetService exposes the active facet definitions.
type FacetService struct {
	registry *facet.Registry
}

// NewFacetService creates a new facet service.
func NewFacetService(registry *facet.Registry) *FacetService {
	return &FacetService{registry: registry}
}

// FacetCatalog is the set of definitions currently in use.
type FacetCatalog struct {
	Groups   facet.Definitions `json:"groups"`
	Source   string            `json:"source"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// Definitions returns the active definitions and where they came from.
func (s *FacetService) Definitions() FacetCatalog {
	source := s.registry.Path()
	if source == "" {
		source = "builtin"
	}
	return FacetCatalog{
		Groups:   s.registry.Definitions(),
		Source:   source,
		LoadedAt: s.registry.LoadedAt(),
	}
}
