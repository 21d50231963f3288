package facet

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/reusemarket/storefront/internal/domain"
)

// Group is a filter group ready for rendering.
type Group struct {
	Key     string        `json:"key"`
	Label   string        `json:"label"`
	Options []GroupOption `json:"options"`
}

// GroupOption is a checkbox with its product count.
type GroupOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Summarize builds one Group per definition. Counts are taken over products
// as given, so callers pass the unfiltered candidate set. Defined options
// nobody carries report zero. Values present in products but missing from
// the definition are appended in sorted order, labelled with the raw value.
func Summarize(products []domain.Product, selected Filters, defs Definitions) []Group {
	groups := make([]Group, 0, len(defs))
	for _, def := range defs {
		counts := FilterCounts(products, def.Key)

		options := make([]GroupOption, 0, len(def.Options))
		known := make(map[string]struct{}, len(def.Options))
		for _, opt := range def.Options {
			known[opt.Value] = struct{}{}
			options = append(options, GroupOption{
				Value:    opt.Value,
				Label:    opt.Label,
				Count:    counts[opt.Value],
				Selected: selected.Has(def.Key, opt.Value),
			})
		}

		var extra []string
		for _, v := range FilterValues(products, def.Key) {
			if _, ok := known[v]; !ok {
				extra = append(extra, v)
			}
		}
		slices.Sort(extra)
		for _, v := range extra {
			options = append(options, GroupOption{
				Value:    v,
				Label:    v,
				Count:    counts[v],
				Selected: selected.Has(def.Key, v),
			})
		}

		groups = append(groups, Group{Key: def.Key, Label: def.Label, Options: options})
	}
	return groups
}

// PriceSummary is the cheapest and most expensive starting price in a set
// of products.
type PriceSummary struct {
	Min   domain.Money `json:"min"`
	Max   domain.Money `json:"max"`
	Count int          `json:"count"`
}

// SummarizePrices returns the price bounds of products, or nil when no
// product has a usable price. The currency of the first priced product wins;
// products priced in another currency or with an unparseable amount are
// ignored.
func SummarizePrices(products []domain.Product) *PriceSummary {
	var (
		summary        *PriceSummary
		minAmt, maxAmt decimal.Decimal
	)

	for i := range products {
		price := products[i].PriceRange.MinVariantPrice
		amount, err := decimal.NewFromString(price.Amount)
		if err != nil {
			continue
		}

		if summary == nil {
			summary = &PriceSummary{Min: price, Max: price, Count: 1}
			minAmt, maxAmt = amount, amount
			continue
		}
		if price.CurrencyCode != summary.Min.CurrencyCode {
			continue
		}

		summary.Count++
		if amount.LessThan(minAmt) {
			minAmt, summary.Min = amount, price
		}
		if amount.GreaterThan(maxAmt) {
			maxAmt, summary.Max = amount, price
		}
	}
	return summary
}
