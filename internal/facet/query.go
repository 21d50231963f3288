package facet

import (
	"net/url"
	"strings"
)

// ParseQuery derives filters from a raw URL query string. Every key=value
// pair becomes one filter, in order of appearance. Pairs whose key is in
// reserved, pairs with an empty key and pairs that fail to unescape are
// skipped. A pair without '=' is a filter with an empty value.
func ParseQuery(rawQuery string, reserved ...string) Filters {
	skip := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		skip[r] = struct{}{}
	}

	filters := make(Filters, 0)
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" || strings.Contains(pair, ";") {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		if _, reservedKey := skip[key]; reservedKey {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		filters = append(filters, Filter{Key: key, Value: value})
	}
	return filters
}
