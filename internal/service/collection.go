package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/reusemarket/storefront/internal/domain"
	domainerrors "github.com/reusemarket/storefront/internal/errors"
	"github.com/reusemarket/storefront/internal/facet"
	"github.com/reusemarket/storefront/internal/storefront"
	"github.com/reusemarket/storefront/internal/validation"
)

// CollectionSource loads pages of products from the shop.
// *storefront.Client implements it.
type CollectionSource interface {
	CollectionByHandle(ctx context.Context, handle string, page storefront.PageParams, in storefront.InContext) (*domain.Collection, error)
	Catalog(ctx context.Context, page storefront.PageParams, in storefront.InContext) (*domain.Collection, error)
}

// DefinitionSource supplies the active facet definitions.
// *facet.Registry implements it.
type DefinitionSource interface {
	Definitions() facet.Definitions
}

// CollectionQuery selects a collection page and the facet filters to apply.
type CollectionQuery struct {
	Handle  string `json:"handle" validate:"required,max=255"`
	Locale  string `json:"locale" validate:"omitempty,max=16"`
	Page    storefront.PageParams
	Filters facet.Filters
	Match   facet.MatchMode
}

// CollectionView is one rendered collection page: the filtered products plus
// the facet counts and price bounds of the unfiltered page.
type CollectionView struct {
	Collection    *domain.Collection   `json:"collection"`
	Products      []domain.Product     `json:"products"`
	Facets        []facet.Group        `json:"facets"`
	Price         *facet.PriceSummary  `json:"price,omitempty"`
	PageInfo      domain.PageInfo      `json:"page_info"`
	Filters       facet.Filters        `json:"filters"`
	Match         facet.MatchMode      `json:"match"`
	TotalCount    int                  `json:"total_count"`
	FilteredCount int                  `json:"filtered_count"`
	Context       storefront.InContext `json:"context"`
}

// CollectionService loads collection pages and applies facet filters.
// Nothing is cached: every call fetches a fresh page.
type CollectionService struct {
	source        CollectionSource
	defs          DefinitionSource
	defaultLocale string
	validator     *validation.Validator
	logger        *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(source CollectionSource, defs DefinitionSource, defaultLocale string, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		source:        source,
		defs:          defs,
		defaultLocale: defaultLocale,
		validator:     validation.New(),
		logger:        logger,
	}
}

// Get loads the requested page of a collection, or of the whole catalog for
// handle "all", and filters it.
func (s *CollectionService) Get(ctx context.Context, q CollectionQuery) (*CollectionView, error) {
	if err := s.validator.Validate(q); err != nil {
		return nil, err
	}

	mode, err := facet.ParseMatchMode(string(q.Match))
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	in := storefront.ResolveLocale(q.Locale, s.defaultLocale)

	var collection *domain.Collection
	if domain.IsCatalogHandle(q.Handle) {
		collection, err = s.source.Catalog(ctx, q.Page, in)
	} else {
		collection, err = s.source.CollectionByHandle(ctx, q.Handle, q.Page, in)
	}
	if err != nil {
		return nil, s.translateError(q.Handle, err)
	}

	filters := q.Filters
	if filters == nil {
		filters = facet.Filters{}
	}

	products := collection.Products
	filtered := facet.ApplyFiltersWith(products, filters, mode)

	s.logger.Debug("collection filtered",
		"handle", q.Handle,
		"catalog", collection.IsCatalog(),
		"filters", len(filters),
		"match", mode,
		"total", len(products),
		"filtered", len(filtered),
	)

	return &CollectionView{
		Collection:    collection,
		Products:      filtered,
		Facets:        facet.Summarize(products, filters, s.defs.Definitions()),
		Price:         facet.SummarizePrices(products),
		PageInfo:      collection.PageInfo,
		Filters:       filters,
		Match:         mode,
		TotalCount:    len(products),
		FilteredCount: len(filtered),
		Context:       in,
	}, nil
}

// translateError maps storefront failures to domain errors. The upstream
// message stays in the cause and is never shown to clients.
func (s *CollectionService) translateError(handle string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, storefront.ErrNotFound):
		return domainerrors.NotFoundf("Collection %s not found", handle)
	case errors.Is(err, storefront.ErrRateLimited):
		return domainerrors.ErrUnavailable.WithCause(err)
	default:
		s.logger.Error("storefront request failed", "handle", handle, "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeUpstream, "storefront request failed")
	}
}
