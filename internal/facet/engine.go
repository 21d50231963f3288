package facet

import (
	"fmt"

	"github.com/reusemarket/storefront/internal/domain"
)

// MatchMode selects how filters sharing a key combine.
type MatchMode string

const (
	// MatchAll requires every filter to hold, including filters that share
	// a key. Selecting two different values of one key matches nothing.
	MatchAll MatchMode = "all"

	// MatchAnyWithinKey ORs values of the same key and ANDs distinct keys.
	MatchAnyWithinKey MatchMode = "any"
)

// ParseMatchMode converts a request value to a MatchMode.
// The empty string selects MatchAll.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchAll:
		return MatchAll, nil
	case MatchAnyWithinKey:
		return MatchAnyWithinKey, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (must be all or any)", s)
	}
}

// Counts maps a metafield value to the number of products carrying it.
// Values no product carries are absent rather than zero.
type Counts map[string]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// ApplyFilters returns the products that satisfy every filter.
// A filter holds when the product's first metafield with the filter's key
// has exactly the filter's value. With no filters the input slice itself is
// returned.
func ApplyFilters(products []domain.Product, filters Filters) []domain.Product {
	return ApplyFiltersWith(products, filters, MatchAll)
}

// ApplyFiltersWith is ApplyFilters with an explicit MatchMode.
// Unknown modes behave as MatchAll.
func ApplyFiltersWith(products []domain.Product, filters Filters, mode MatchMode) []domain.Product {
	if len(filters) == 0 {
		return products
	}

	match := matchAll(filters)
	if mode == MatchAnyWithinKey {
		match = matchAnyWithinKey(filters)
	}

	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if match(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// FilterValues returns the distinct non-empty values of key across products,
// in order of first appearance. Only the first metafield with key counts.
func FilterValues(products []domain.Product, key string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for i := range products {
		v, ok := products[i].Metafield(key)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// FilterCounts returns, for each distinct non-empty value of key, the number
// of products whose first metafield with key has that value. Each product
// contributes at most once.
func FilterCounts(products []domain.Product, key string) Counts {
	counts := make(Counts)
	for i := range products {
		if v, ok := products[i].Metafield(key); ok && v != "" {
			counts[v]++
		}
	}
	return counts
}

type predicate func(*domain.Product) bool

func matchAll(filters Filters) predicate {
	return func(p *domain.Product) bool {
		for _, f := range filters {
			v, ok := p.Metafield(f.Key)
			if !ok || v != f.Value {
				return false
			}
		}
		return true
	}
}

func matchAnyWithinKey(filters Filters) predicate {
	keys := filters.Keys()
	allowed := make(map[string]map[string]struct{}, len(keys))
	for _, f := range filters {
		set, ok := allowed[f.Key]
		if !ok {
			set = make(map[string]struct{})
			allowed[f.Key] = set
		}
		set[f.Value] = struct{}{}
	}

	return func(p *domain.Product) bool {
		for _, key := range keys {
			v, ok := p.Metafield(key)
			if !ok {
				return false
			}
			if _, hit := allowed[key][v]; !hit {
				return false
			}
		}
		return true
	}
}
