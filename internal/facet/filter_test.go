package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilters_Keys(t *testing.T) {
	fs := Filters{
		{Key: "condition", Value: "good"},
		{Key: "is_used", Value: "true"},
		{Key: "condition", Value: "new"},
	}

	assert.Equal(t, []string{"condition", "is_used"}, fs.Keys())
	assert.Empty(t, Filters(nil).Keys())
}

func TestFilters_Values(t *testing.T) {
	fs := Filters{
		{Key: "condition", Value: "good"},
		{Key: "is_used", Value: "true"},
		{Key: "condition", Value: "new"},
	}

	assert.Equal(t, []string{"good", "new"}, fs.Values("condition"))
	assert.Nil(t, fs.Values("color"))
}

func TestFilters_Toggle(t *testing.T) {
	tests := []struct {
		name  string
		start Filters
		key   string
		value string
		want  Filters
	}{
		{
			name:  "adds to empty",
			key:   "condition",
			value: "good",
			want:  Filters{{Key: "condition", Value: "good"}},
		},
		{
			name:  "appends new pair",
			start: Filters{{Key: "condition", Value: "good"}},
			key:   "condition",
			value: "new",
			want:  Filters{{Key: "condition", Value: "good"}, {Key: "condition", Value: "new"}},
		},
		{
			name:  "removes selected pair",
			start: Filters{{Key: "condition", Value: "good"}, {Key: "is_used", Value: "true"}},
			key:   "condition",
			value: "good",
			want:  Filters{{Key: "is_used", Value: "true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Toggle(tt.key, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilters_ToggleTwiceRestores(t *testing.T) {
	start := Filters{{Key: "is_used", Value: "true"}, {Key: "has_warranty", Value: "false"}}
	snapshot := append(Filters(nil), start...)

	for _, pair := range []Filter{
		{Key: "condition", Value: "good"},
		{Key: "has_accessories", Value: "true"},
	} {
		got := start.Toggle(pair.Key, pair.Value).Toggle(pair.Key, pair.Value)
		assert.Equal(t, start, got, "toggle(%s) twice", pair)
	}

	assert.Equal(t, snapshot, start, "receiver must not change")
}

func TestFilters_ToggleDoesNotAlias(t *testing.T) {
	start := make(Filters, 1, 4)
	start[0] = Filter{Key: "is_used", Value: "true"}

	a := start.Toggle("condition", "good")
	b := start.Toggle("condition", "new")

	assert.Equal(t, "good", a[1].Value)
	assert.Equal(t, "new", b[1].Value)
}

func TestFilters_Encode(t *testing.T) {
	fs := Filters{
		{Key: "condition", Value: "good"},
		{Key: "brand name", Value: "A&B"},
		{Key: "is_used", Value: ""},
	}

	assert.Equal(t, "condition=good&brand+name=A%26B&is_used=", fs.Encode())
	assert.Equal(t, "", Filters(nil).Encode())
}

func TestFilters_EncodeParseRoundTrip(t *testing.T) {
	fs := Filters{
		{Key: "condition", Value: "good"},
		{Key: "status", Value: "状態=良好"},
		{Key: "condition", Value: "new"},
	}

	assert.Equal(t, fs, ParseQuery(fs.Encode()))
}
