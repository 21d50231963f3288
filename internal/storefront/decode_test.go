package storefront

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		body        []byte
		wantHandles []string
		wantErr     error
	}{
		{
			name:        "collection response drops invalid products",
			body:        loadFixture(t, "collection_response.json"),
			wantHandles: []string{"walnut-lounge-chair", "oak-dining-chair"},
		},
		{
			name:        "catalog response",
			body:        loadFixture(t, "catalog_response.json"),
			wantHandles: []string{"walnut-lounge-chair"},
		},
		{
			name:    "null collection",
			body:    []byte(`{"data":{"collection":null}}`),
			wantErr: ErrNotFound,
		},
		{
			name:    "graphql errors",
			body:    []byte(`{"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`),
			wantErr: ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := DecodePayload(tt.body, quiet)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)

			handles := make([]string, 0, len(products))
			for _, p := range products {
				handles = append(handles, p.Handle)
			}
			assert.Equal(t, tt.wantHandles, handles)
		})
	}
}

func TestDecodePayload_SkipsNullMetafields(t *testing.T) {
	products, err := DecodePayload(loadFixture(t, "collection_response.json"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	first := products[0]
	assert.Len(t, first.Metafields, 3)
	condition, _ := first.Metafield("condition")
	warranty, _ := first.Metafield("has_warranty")
	assert.Equal(t, "good", condition)
	assert.Equal(t, "true", warranty)
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := DecodePayload([]byte(`{"data":`), nil)
	assert.Error(t, err)
}
