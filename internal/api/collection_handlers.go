package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reusemarket/storefront/internal/domain"
	"github.com/reusemarket/storefront/internal/facet"
	"github.com/reusemarket/storefront/internal/service"
	"github.com/reusemarket/storefront/internal/storefront"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{handle}",
		Summary:     "Get collection",
		Description: "Returns one page of a collection filtered by metafield facets. " +
			"Every query parameter other than cursor, direction, match and locale is a filter; " +
			"repeat a key to select several values. Use handle \"all\" for the whole catalog.",
		Tags: []string{"Collections"},
	}, s.handleGetCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLocalizedCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/{locale}/collections/{handle}",
		Summary:     "Get localized collection",
		Description: "Same as getCollection, with prices and content for the locale in the path.",
		Tags:        []string{"Collections"},
	}, s.handleGetLocalizedCollection)
}

// === DTOs ===

// GetCollectionInput contains parameters for getting a collection page.
type GetCollectionInput struct {
	Handle    string `path:"handle" maxLength:"255" doc:"Collection handle, or all"`
	Cursor    string `query:"cursor" doc:"Page cursor from a previous response"`
	Direction string `query:"direction" enum:"next,previous" doc:"Page direction relative to cursor"`
	Match     string `query:"match" enum:"all,any" doc:"all: every filter must match; any: any value within a key"`
	Locale    string `query:"locale" doc:"Buyer locale such as ja-JP"`

	filters facet.Filters
}

// Resolve collects the facet filters from the raw query string.
func (i *GetCollectionInput) Resolve(ctx huma.Context) []error {
	i.filters = facet.ParseQuery(ctx.URL().RawQuery, reservedParams...)
	return nil
}

// GetLocalizedCollectionInput is GetCollectionInput with the locale taken
// from the path.
type GetLocalizedCollectionInput struct {
	Locale    string `path:"locale" maxLength:"16" doc:"Buyer locale such as ja-JP"`
	Handle    string `path:"handle" maxLength:"255" doc:"Collection handle, or all"`
	Cursor    string `query:"cursor" doc:"Page cursor from a previous response"`
	Direction string `query:"direction" enum:"next,previous" doc:"Page direction relative to cursor"`
	Match     string `query:"match" enum:"all,any" doc:"all: every filter must match; any: any value within a key"`

	filters facet.Filters
}

// Resolve collects the facet filters from the raw query string.
func (i *GetLocalizedCollectionInput) Resolve(ctx huma.Context) []error {
	i.filters = facet.ParseQuery(ctx.URL().RawQuery, reservedParams...)
	return nil
}

// CollectionSummary identifies the collection a page belongs to.
type CollectionSummary struct {
	ID          string `json:"id" doc:"Collection ID"`
	Handle      string `json:"handle" doc:"Collection handle"`
	Title       string `json:"title" doc:"Collection title"`
	Description string `json:"description,omitempty" doc:"Collection description"`
}

// FacetOptionResponse is one checkbox of a facet group.
type FacetOptionResponse struct {
	Value    string `json:"value" doc:"Metafield value"`
	Label    string `json:"label" doc:"Display label"`
	Count    int    `json:"count" doc:"Products on this page carrying the value"`
	Selected bool   `json:"selected" doc:"Whether the value is currently selected"`
	Href     string `json:"href" doc:"URL with this value toggled"`
}

// FacetGroupResponse is a facet group with its options.
type FacetGroupResponse struct {
	Key     string                `json:"key" doc:"Metafield key"`
	Label   string                `json:"label" doc:"Display label"`
	Options []FacetOptionResponse `json:"options" doc:"Options in display order"`
}

// PageLinks are ready-made URLs for the current and neighbouring pages.
type PageLinks struct {
	Self     string `json:"self" doc:"This page"`
	Next     string `json:"next,omitempty" doc:"Next page, when there is one"`
	Previous string `json:"previous,omitempty" doc:"Previous page, when there is one"`
}

// CollectionResponse is a filtered collection page.
type CollectionResponse struct {
	Collection    CollectionSummary    `json:"collection" doc:"Collection the page belongs to"`
	Products      []domain.Product     `json:"products" doc:"Products matching the filters"`
	Facets        []FacetGroupResponse `json:"facets" doc:"Facet groups counted over the unfiltered page"`
	Price         *facet.PriceSummary  `json:"price,omitempty" doc:"Price bounds of the unfiltered page"`
	Filters       facet.Filters        `json:"filters" doc:"Selected filters in request order"`
	Match         string               `json:"match" doc:"Filter match mode"`
	PageInfo      domain.PageInfo      `json:"page_info" doc:"Cursor window of the page"`
	Links         PageLinks            `json:"links" doc:"Navigation links"`
	TotalCount    int                  `json:"total_count" doc:"Products on the page before filtering"`
	FilteredCount int                  `json:"filtered_count" doc:"Products on the page after filtering"`
	Context       storefront.InContext `json:"context" doc:"Buyer context the page was priced in"`
}

// CollectionOutput wraps the collection response for Huma.
type CollectionOutput struct {
	Body CollectionResponse
}

// === Handlers ===

func (s *Server) handleGetCollection(ctx context.Context, input *GetCollectionInput) (*CollectionOutput, error) {
	return s.getCollection(ctx, collectionRequest{
		basePath:  "/api/v1/collections/" + url.PathEscape(input.Handle),
		handle:    input.Handle,
		locale:    input.Locale,
		cursor:    input.Cursor,
		direction: input.Direction,
		match:     input.Match,
		filters:   input.filters,

		keepLocaleParam: input.Locale != "",
	})
}

func (s *Server) handleGetLocalizedCollection(ctx context.Context, input *GetLocalizedCollectionInput) (*CollectionOutput, error) {
	return s.getCollection(ctx, collectionRequest{
		basePath:  "/api/v1/" + url.PathEscape(input.Locale) + "/collections/" + url.PathEscape(input.Handle),
		handle:    input.Handle,
		locale:    input.Locale,
		cursor:    input.Cursor,
		direction: input.Direction,
		match:     input.Match,
		filters:   input.filters,
	})
}

type collectionRequest struct {
	basePath  string
	handle    string
	locale    string
	cursor    string
	direction string
	match     string
	filters   facet.Filters

	// keepLocaleParam carries ?locale= into generated links.
	keepLocaleParam bool
}

func (s *Server) getCollection(ctx context.Context, req collectionRequest) (*CollectionOutput, error) {
	view, err := s.services.Collection.Get(ctx, service.CollectionQuery{
		Handle: req.handle,
		Locale: req.locale,
		Page: storefront.PageParams{
			Cursor:    req.cursor,
			Direction: req.direction,
		},
		Filters: req.filters,
		Match:   facet.MatchMode(req.match),
	})
	if err != nil {
		return nil, err
	}

	links := linkBuilder{
		basePath: req.basePath,
		match:    view.Match,
	}
	if req.keepLocaleParam {
		links.locale = req.locale
	}

	return &CollectionOutput{Body: toCollectionResponse(view, links, req)}, nil
}

func toCollectionResponse(view *service.CollectionView, links linkBuilder, req collectionRequest) CollectionResponse {
	facets := make([]FacetGroupResponse, 0, len(view.Facets))
	for _, g := range view.Facets {
		options := make([]FacetOptionResponse, 0, len(g.Options))
		for _, o := range g.Options {
			options = append(options, FacetOptionResponse{
				Value:    o.Value,
				Label:    o.Label,
				Count:    o.Count,
				Selected: o.Selected,
				Href:     links.href(view.Filters.Toggle(g.Key, o.Value), req.cursor, req.direction),
			})
		}
		facets = append(facets, FacetGroupResponse{Key: g.Key, Label: g.Label, Options: options})
	}

	pageLinks := PageLinks{Self: links.href(view.Filters, req.cursor, req.direction)}
	if view.PageInfo.HasNextPage && view.PageInfo.EndCursor != "" {
		pageLinks.Next = links.href(view.Filters, view.PageInfo.EndCursor, "")
	}
	if view.PageInfo.HasPreviousPage && view.PageInfo.StartCursor != "" {
		pageLinks.Previous = links.href(view.Filters, view.PageInfo.StartCursor, storefront.DirectionPrevious)
	}

	products := view.Products
	if products == nil {
		products = []domain.Product{}
	}

	return CollectionResponse{
		Collection: CollectionSummary{
			ID:          view.Collection.ID,
			Handle:      view.Collection.Handle,
			Title:       view.Collection.Title,
			Description: view.Collection.Description,
		},
		Products:      products,
		Facets:        facets,
		Price:         view.Price,
		Filters:       view.Filters,
		Match:         string(view.Match),
		PageInfo:      view.PageInfo,
		Links:         pageLinks,
		TotalCount:    view.TotalCount,
		FilteredCount: view.FilteredCount,
		Context:       view.Context,
	}
}

// linkBuilder renders collection URLs: filters first in selection order,
// then the reserved parameters.
type linkBuilder struct {
	basePath string
	match    facet.MatchMode
	locale   string
}

func (b linkBuilder) href(filters facet.Filters, cursor, direction string) string {
	reserved := url.Values{}
	if cursor != "" {
		reserved.Set("cursor", cursor)
		if direction == storefront.DirectionPrevious {
			reserved.Set("direction", direction)
		}
	}
	if b.match != "" && b.match != facet.MatchAll {
		reserved.Set("match", string(b.match))
	}
	if b.locale != "" {
		reserved.Set("locale", b.locale)
	}

	query := filters.Encode()
	if extra := reserved.Encode(); extra != "" {
		if query != "" {
			query += "&"
		}
		query += extra
	}

	if query == "" {
		return b.basePath
	}
	return b.basePath + "?" + query
}
