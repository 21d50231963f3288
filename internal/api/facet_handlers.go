package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/reusemarket/storefront/internal/errors"
	"github.com/reusemarket/storefront/internal/facet"
)

func (s *Server) registerFacetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFacets",
		Method:      http.MethodGet,
		Path:        "/api/v1/facets",
		Summary:     "List facet definitions",
		Description: "Returns the facet groups and options offered on collection pages",
		Tags:        []string{"Facets"},
	}, s.handleListFacets)
}

// FacetsResponse contains the active facet definitions.
type FacetsResponse struct {
	Groups   facet.Definitions `json:"groups" doc:"Facet groups in display order"`
	Source   string            `json:"source" doc:"Definitions file, or builtin"`
	LoadedAt time.Time         `json:"loaded_at" doc:"When the definitions were loaded"`
}

// FacetsOutput wraps the facets response for Huma.
type FacetsOutput struct {
	Body FacetsResponse
}

func (s *Server) handleListFacets(_ context.Context, _ *struct{}) (*FacetsOutput, error) {
	if s.services == nil || s.services.Facets == nil {
		return nil, domainerrors.Unavailable("facet definitions are not configured")
	}

	catalog := s.services.Facets.Definitions()
	return &FacetsOutput{
		Body: FacetsResponse{
			Groups:   catalog.Groups,
			Source:   catalog.Source,
			LoadedAt: catalog.LoadedAt,
		},
	}, nil
}
