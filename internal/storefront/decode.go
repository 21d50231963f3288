package storefront

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/reusemarket/storefront/internal/domain"
	"github.com/reusemarket/storefront/internal/validation"
)

// Raw API response types (internal)

type graphQLResponse struct {
	Data   json.RawMessage     `json:"data"`
	Errors []GraphQLErrorEntry `json:"errors"`
}

type collectionData struct {
	Collection *rawCollection `json:"collection"`
}

type catalogData struct {
	Products rawConnection `json:"products"`
}

type rawCollection struct {
	ID          string        `json:"id"`
	Handle      string        `json:"handle"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Products    rawConnection `json:"products"`
}

type rawConnection struct {
	Nodes    []rawProduct `json:"nodes"`
	PageInfo rawPageInfo  `json:"pageInfo"`
}

type rawPageInfo struct {
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type rawProduct struct {
	ID            string          `json:"id"`
	Handle        string          `json:"handle"`
	Title         string          `json:"title"`
	FeaturedImage *rawImage       `json:"featuredImage"`
	PriceRange    rawPriceRange   `json:"priceRange"`
	Metafields    []*rawMetafield `json:"metafields"`
}

type rawImage struct {
	ID      *string `json:"id"`
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
	Width   *int    `json:"width"`
	Height  *int    `json:"height"`
}

type rawPriceRange struct {
	MinVariantPrice rawMoney `json:"minVariantPrice"`
}

type rawMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type rawMetafield struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (r rawPageInfo) toDomain() domain.PageInfo {
	return domain.PageInfo{
		HasPreviousPage: r.HasPreviousPage,
		HasNextPage:     r.HasNextPage,
		StartCursor:     deref(r.StartCursor),
		EndCursor:       deref(r.EndCursor),
	}
}

// toDomain converts a product node. Null metafield entries, returned for
// identifiers the product does not carry, are skipped.
func (r *rawProduct) toDomain() domain.Product {
	p := domain.Product{
		ID:     r.ID,
		Title:  r.Title,
		Handle: r.Handle,
		PriceRange: domain.PriceRange{
			MinVariantPrice: domain.Money{
				Amount:       r.PriceRange.MinVariantPrice.Amount,
				CurrencyCode: r.PriceRange.MinVariantPrice.CurrencyCode,
			},
		},
		Metafields: make([]domain.Metafield, 0, len(r.Metafields)),
	}

	if img := r.FeaturedImage; img != nil {
		p.FeaturedImage = &domain.Image{
			ID:      deref(img.ID),
			URL:     img.URL,
			AltText: deref(img.AltText),
			Width:   deref(img.Width),
			Height:  deref(img.Height),
		}
	}

	for _, mf := range r.Metafields {
		if mf == nil {
			continue
		}
		p.Metafields = append(p.Metafields, domain.Metafield{Key: mf.Key, Value: deref(mf.Value)})
	}
	return p
}

// decodeProducts converts and validates product nodes. Invalid products are
// dropped and logged; they never reach the facet engine.
func decodeProducts(nodes []rawProduct, v *validation.Validator, logger *slog.Logger) []domain.Product {
	products := make([]domain.Product, 0, len(nodes))
	for i := range nodes {
		p := nodes[i].toDomain()
		if err := v.Validate(p); err != nil {
			logger.Warn("dropping invalid storefront product",
				"id", p.ID,
				"handle", p.Handle,
				"error", err,
			)
			continue
		}
		products = append(products, p)
	}
	return products
}

// DecodePayload extracts the products from a saved Storefront API response:
// either a collection query ({data:{collection:{products}}}) or a catalog
// query ({data:{products}}). Invalid products are dropped as they are for
// live responses.
func DecodePayload(body []byte, logger *slog.Logger) ([]domain.Product, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, &GraphQLError{Errors: resp.Errors}
	}

	var data struct {
		Collection *rawCollection `json:"collection"`
		Products   *rawConnection `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}

	v := validation.New()
	switch {
	case data.Collection != nil:
		return decodeProducts(data.Collection.Products.Nodes, v, logger), nil
	case data.Products != nil:
		return decodeProducts(data.Products.Nodes, v, logger), nil
	default:
		return nil, ErrNotFound
	}
}
