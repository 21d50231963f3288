// Package facet implements metafield filtering and facet counting over
// storefront products.
//
// The engine functions (ApplyFilters, FilterValues, FilterCounts) are pure:
// they never mutate their inputs, never fail and hold no state, so they are
// safe to call concurrently from any number of requests.
package facet

import (
	"net/url"
	"slices"
	"strings"
)

// Filter is a single selected facet value.
type Filter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String renders the filter as a key=value pair.
func (f Filter) String() string {
	return f.Key + "=" + f.Value
}

// Filters is an ordered list of selected facet values. Several filters may
// share a key. Methods never modify the receiver.
type Filters []Filter

// Has reports whether the exact key/value pair is selected.
func (fs Filters) Has(key, value string) bool {
	return slices.Contains(fs, Filter{Key: key, Value: value})
}

// Keys returns the distinct keys in order of first appearance.
func (fs Filters) Keys() []string {
	keys := make([]string, 0, len(fs))
	for _, f := range fs {
		if !slices.Contains(keys, f.Key) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Values returns the selected values for key, in order.
func (fs Filters) Values(key string) []string {
	var values []string
	for _, f := range fs {
		if f.Key == key {
			values = append(values, f.Value)
		}
	}
	return values
}

// Toggle returns a copy with the pair removed when it is selected, or with
// the pair appended when it is not. This is what a checkbox click does.
func (fs Filters) Toggle(key, value string) Filters {
	target := Filter{Key: key, Value: value}
	if !fs.Has(key, value) {
		out := make(Filters, len(fs), len(fs)+1)
		copy(out, fs)
		return append(out, target)
	}

	out := make(Filters, 0, len(fs))
	for _, f := range fs {
		if f != target {
			out = append(out, f)
		}
	}
	return out
}

// Encode renders the filters as a query string, preserving order.
func (fs Filters) Encode() string {
	var b strings.Builder
	for i, f := range fs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}
