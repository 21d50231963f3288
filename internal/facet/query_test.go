package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		reserved []string
		want     Filters
	}{
		{
			name: "empty",
			raw:  "",
			want: Filters{},
		},
		{
			name: "keeps order and duplicates",
			raw:  "condition=good&is_used=true&condition=new",
			want: Filters{
				{Key: "condition", Value: "good"},
				{Key: "is_used", Value: "true"},
				{Key: "condition", Value: "new"},
			},
		},
		{
			name:     "skips reserved keys",
			raw:      "cursor=abc&condition=good&direction=previous&match=any",
			reserved: []string{"cursor", "direction", "match"},
			want:     Filters{{Key: "condition", Value: "good"}},
		},
		{
			name: "unescapes",
			raw:  "brand+name=A%26B&label=%E8%89%AF%E5%A5%BD",
			want: Filters{
				{Key: "brand name", Value: "A&B"},
				{Key: "label", Value: "良好"},
			},
		},
		{
			name: "pair without equals has empty value",
			raw:  "is_used",
			want: Filters{{Key: "is_used", Value: ""}},
		},
		{
			name: "skips empty key and empty pairs",
			raw:  "&&=good&condition=new&",
			want: Filters{{Key: "condition", Value: "new"}},
		},
		{
			name: "skips bad escapes",
			raw:  "condition=%zz&is_used=true&%g=1",
			want: Filters{{Key: "is_used", Value: "true"}},
		},
		{
			name: "skips semicolons",
			raw:  "condition=good;is_used=true&has_warranty=true",
			want: Filters{{Key: "has_warranty", Value: "true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.raw, tt.reserved...))
		})
	}
}
