package storefront

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for Storefront API operations.
var (
	ErrNotFound     = errors.New("storefront: not found")
	ErrRateLimited  = errors.New("storefront: rate limited by server")
	ErrUnauthorized = errors.New("storefront: access token rejected")
	ErrBadRequest   = errors.New("storefront: bad request")
	ErrServer       = errors.New("storefront: server error")
)

// GraphQLErrorEntry is one element of a GraphQL response's errors array.
type GraphQLErrorEntry struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, or "".
func (e GraphQLErrorEntry) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// GraphQLError reports errors returned inside a 200 GraphQL response.
type GraphQLError struct {
	Errors []GraphQLErrorEntry
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		msgs = append(msgs, entry.Message)
	}
	return "storefront: graphql: " + strings.Join(msgs, "; ")
}

// Unwrap maps well-known error codes to sentinel errors so callers can use
// errors.Is(err, ErrRateLimited) for a throttled query.
func (e *GraphQLError) Unwrap() error {
	for _, entry := range e.Errors {
		switch entry.Code() {
		case "THROTTLED":
			return ErrRateLimited
		case "ACCESS_DENIED", "UNAUTHORIZED":
			return ErrUnauthorized
		case "INTERNAL_SERVER_ERROR":
			return ErrServer
		}
	}
	return ErrBadRequest
}

// Error wraps an underlying error with operation context.
type Error struct {
	Op     string // Operation: "collection", "catalog", "raw"
	Handle string // If applicable
	Err    error
}

func (e *Error) Error() string {
	if e.Handle != "" {
		return fmt.Sprintf("storefront %s [%s]: %v", e.Op, e.Handle, e.Err)
	}
	return fmt.Sprintf("storefront %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, handle string, err error) error {
	return &Error{Op: op, Handle: handle, Err: err}
}
