// Package domain contains the storefront entities shared by the client, the
// facet engine and the HTTP API.
package domain

// Product is a storefront product as loaded for a single request.
// Products are never mutated after they are decoded.
type Product struct {
	ID            string      `json:"id" validate:"required"`
	Title         string      `json:"title" validate:"required"`
	Handle        string      `json:"handle" validate:"required"`
	FeaturedImage *Image      `json:"featured_image,omitempty"`
	PriceRange    PriceRange  `json:"price_range"`
	Metafields    []Metafield `json:"metafields" validate:"dive"`
}

// Metafield is a key/value attribute attached to a product.
// Keys are not guaranteed to be unique within a product.
type Metafield struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// Image is a product image.
type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url" validate:"required,url"`
	AltText string `json:"alt_text,omitempty"`
	Width   int    `json:"width,omitempty" validate:"gte=0"`
	Height  int    `json:"height,omitempty" validate:"gte=0"`
}

// Money is a decimal amount in a currency. Amount is kept as the decimal
// string the platform returns so no precision is lost.
type Money struct {
	Amount       string `json:"amount" validate:"required,numeric"`
	CurrencyCode string `json:"currency_code" validate:"required,len=3"`
}

// PriceRange holds the cheapest variant price of a product.
type PriceRange struct {
	MinVariantPrice Money `json:"min_variant_price"`
}

// Metafield returns the value of the first metafield with the given key.
// The second result reports whether any metafield with that key exists.
func (p *Product) Metafield(key string) (string, bool) {
	for i := range p.Metafields {
		if p.Metafields[i].Key == key {
			return p.Metafields[i].Value, true
		}
	}
	return "", false
}
