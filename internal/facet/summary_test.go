package facet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reusemarket/storefront/internal/domain"
)

func TestSummarize(t *testing.T) {
	products := []domain.Product{
		product("1", "condition", "good"),
		product("2", "condition", "good"),
		product("3", "condition", "junk"),
		product("4", "condition", "broken"),
	}
	defs := Definitions{{
		Key:   "condition",
		Label: "状態",
		Options: []Option{
			{Value: "new", Label: "新品同様"},
			{Value: "good", Label: "良好"},
		},
	}}
	selected := Filters{{Key: "condition", Value: "good"}, {Key: "condition", Value: "junk"}}

	want := []Group{{
		Key:   "condition",
		Label: "状態",
		Options: []GroupOption{
			{Value: "new", Label: "新品同様", Count: 0},
			{Value: "good", Label: "良好", Count: 2, Selected: true},
			{Value: "broken", Label: "broken", Count: 1},
			{Value: "junk", Label: "junk", Count: 1, Selected: true},
		},
	}}

	got := Summarize(products, selected, defs)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_CountsMatchFilterCounts(t *testing.T) {
	products := fixtureProducts()
	defs := DefaultDefinitions()

	groups := Summarize(products, nil, defs)
	require.Len(t, groups, len(defs))

	for _, g := range groups {
		counts := FilterCounts(products, g.Key)
		for _, opt := range g.Options {
			assert.Equal(t, counts[opt.Value], opt.Count, "%s=%s", g.Key, opt.Value)
			assert.False(t, opt.Selected)
		}
	}
}

func TestSummarize_EmptyProducts(t *testing.T) {
	groups := Summarize(nil, nil, DefaultDefinitions())
	for _, g := range groups {
		for _, opt := range g.Options {
			assert.Zero(t, opt.Count)
		}
	}
}

func priced(id, amount, currency string) domain.Product {
	p := product(id)
	p.PriceRange.MinVariantPrice = domain.Money{Amount: amount, CurrencyCode: currency}
	return p
}

func TestSummarizePrices(t *testing.T) {
	products := []domain.Product{
		priced("1", "12000.0", "JPY"),
		priced("2", "980.0", "JPY"),
		priced("3", "not-a-number", "JPY"),
		priced("4", "1.0", "USD"),
		priced("5", "45800.0", "JPY"),
	}

	got := SummarizePrices(products)
	require.NotNil(t, got)
	assert.Equal(t, domain.Money{Amount: "980.0", CurrencyCode: "JPY"}, got.Min)
	assert.Equal(t, domain.Money{Amount: "45800.0", CurrencyCode: "JPY"}, got.Max)
	assert.Equal(t, 3, got.Count)
}

func TestSummarizePrices_NoPrices(t *testing.T) {
	assert.Nil(t, SummarizePrices(nil))
	assert.Nil(t, SummarizePrices([]domain.Product{product("1")}))
}
