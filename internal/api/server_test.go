package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/reusemarket/storefront/internal/domain"
	"github.com/reusemarket/storefront/internal/facet"
	"github.com/reusemarket/storefront/internal/http/response"
	"github.com/reusemarket/storefront/internal/service"
	"github.com/reusemarket/storefront/internal/storefront"
)

// testEnvelope decodes the response envelope with a typed payload.
type testEnvelope[T any] struct {
	Version int                 `json:"v"`
	Success bool                `json:"success"`
	Data    T                   `json:"data"`
	Error   *response.ErrorBody `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

type fakeSource struct {
	collection *domain.Collection
	err        error

	lastHandle string
	lastPage   storefront.PageParams
	lastIn     storefront.InContext
	catalog    bool
}

func (f *fakeSource) CollectionByHandle(_ context.Context, handle string, page storefront.PageParams, in storefront.InContext) (*domain.Collection, error) {
	f.lastHandle, f.lastPage, f.lastIn = handle, page, in
	if f.err != nil {
		return nil, f.err
	}
	return f.collection, nil
}

func (f *fakeSource) Catalog(_ context.Context, page storefront.PageParams, in storefront.InContext) (*domain.Collection, error) {
	f.catalog = true
	f.lastPage, f.lastIn = page, in
	if f.err != nil {
		return nil, f.err
	}
	return f.collection, nil
}

type fakeProxy struct {
	body []byte
	err  error
	last storefront.GraphQLRequest
}

func (f *fakeProxy) Raw(_ context.Context, req storefront.GraphQLRequest) ([]byte, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func testProduct(id string, fields ...string) domain.Product {
	p := domain.Product{
		ID:     "gid://shopify/Product/" + id,
		Title:  "Product " + id,
		Handle: "product-" + id,
		PriceRange: domain.PriceRange{
			MinVariantPrice: domain.Money{Amount: "1000.0", CurrencyCode: "JPY"},
		},
	}
	for i := 0; i+1 < len(fields); i += 2 {
		p.Metafields = append(p.Metafields, domain.Metafield{Key: fields[i], Value: fields[i+1]})
	}
	return p
}

func testCollection() *domain.Collection {
	return &domain.Collection{
		ID:     "gid://shopify/Collection/1",
		Handle: "used-cameras",
		Title:  "Used cameras",
		Products: []domain.Product{
			testProduct("1", "condition", "good", "has_warranty", "true"),
			testProduct("2", "condition", "new", "has_warranty", "false"),
			testProduct("3", "condition", "good"),
		},
		PageInfo: domain.PageInfo{
			HasNextPage: true,
			StartCursor: "c1",
			EndCursor:   "c2",
		},
	}
}

type testServer struct {
	*Server
	api    humatest.TestAPI
	source *fakeSource
	proxy  *fakeProxy
}

func setupTestServer(t *testing.T, opts ...func(*Options)) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := facet.NewRegistry("", logger)
	require.NoError(t, err)

	source := &fakeSource{collection: testCollection()}
	proxy := &fakeProxy{body: []byte(`{"data":{"shop":{"name":"Reuse Market"}}}`)}

	services := &Services{
		Collection: service.NewCollectionService(source, registry, "ja-JP", logger),
		Facets:     service.NewFacetService(registry),
		GraphQL:    proxy,
	}

	options := Options{Version: "test"}
	for _, opt := range opts {
		opt(&options)
	}

	s := NewServer(services, options, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.API()),
		source: source,
		proxy:  proxy,
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, resp.Header().Get(requestIDHeader))
}

func TestServer_UnknownRouteIsNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/nowhere")

	require.Equal(t, http.StatusNotFound, resp.Code)
}
