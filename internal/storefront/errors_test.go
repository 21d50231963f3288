package storefront

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphQLError_Unwrap(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  error
	}{
		{"throttled", []string{"THROTTLED"}, ErrRateLimited},
		{"access denied", []string{"ACCESS_DENIED"}, ErrUnauthorized},
		{"unauthorized", []string{"UNAUTHORIZED"}, ErrUnauthorized},
		{"internal", []string{"INTERNAL_SERVER_ERROR"}, ErrServer},
		{"first known code wins", []string{"", "THROTTLED", "ACCESS_DENIED"}, ErrRateLimited},
		{"unknown code", []string{"MAX_COMPLEXITY_EXCEEDED"}, ErrBadRequest},
		{"no code", []string{""}, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gqlErr := &GraphQLError{}
			for _, code := range tt.codes {
				entry := GraphQLErrorEntry{Message: "failed"}
				if code != "" {
					entry.Extensions = map[string]any{"code": code}
				}
				gqlErr.Errors = append(gqlErr.Errors, entry)
			}

			assert.True(t, errors.Is(gqlErr, tt.want))
			assert.True(t, errors.Is(wrapError("collection", "chairs", gqlErr), tt.want))
		})
	}
}
