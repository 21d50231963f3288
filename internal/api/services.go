package api

import (
	"context"

	"github.com/reusemarket/storefront/internal/service"
	"github.com/reusemarket/storefront/internal/storefront"
)

// GraphQLProxy forwards raw GraphQL queries to the shop.
// *storefront.Client implements it.
type GraphQLProxy interface {
	Raw(ctx context.Context, req storefront.GraphQLRequest) ([]byte, error)
}

// Services groups the business logic used by the API server.
type Services struct {
	Collection *service.CollectionService
	Facets     *service.FacetService
	GraphQL    GraphQLProxy
}
