package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection_IsCatalog(t *testing.T) {
	tests := []struct {
		name   string
		handle string
		want   bool
	}{
		{"catalog handle", CatalogHandle, true},
		{"regular collection", "used-cameras", false},
		{"handles are case sensitive", "ALL", false},
		{"empty handle", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collection{Handle: tt.handle}
			assert.Equal(t, tt.want, c.IsCatalog())
			assert.Equal(t, tt.want, IsCatalogHandle(tt.handle))
		})
	}
}
