package api

const (
	requestIDHeader = "X-Request-ID"

	// maxProxyBodyBytes caps GraphQL proxy request bodies.
	maxProxyBodyBytes = 256 << 10
)

// reservedParams are collection query parameters that are not facet filters.
var reservedParams = []string{"cursor", "direction", "match", "locale"}
