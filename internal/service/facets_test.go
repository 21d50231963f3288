package service

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reusemarket/storefront/internal/facet"
)

func TestFacetService_Definitions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	builtin, err := facet.NewRegistry("", logger)
	require.NoError(t, err)

	got := NewFacetService(builtin).Definitions()
	assert.Equal(t, "builtin", got.Source)
	assert.Equal(t, facet.DefaultDefinitions(), got.Groups)
	assert.False(t, got.LoadedAt.IsZero())

	path := filepath.Join(t.TempDir(), "facets.yaml")
	doc := "groups:\n  - key: condition\n    label: 状態\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	fromFile, err := facet.NewRegistry(path, logger)
	require.NoError(t, err)

	got = NewFacetService(fromFile).Definitions()
	assert.Equal(t, path, got.Source)
	assert.Equal(t, []string{"condition"}, got.Groups.Keys())
}
