package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/reusemarket/storefront/internal/errors"
	"github.com/reusemarket/storefront/internal/logger"
	"github.com/reusemarket/storefront/internal/storefront"
)

func (s *Server) registerGraphQLRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:  "proxyGraphQL",
		Method:       http.MethodPost,
		Path:         "/api/v1/graphql",
		Summary:      "GraphQL proxy",
		Description:  "Forwards a Storefront API query and returns the shop's response unchanged",
		Tags:         []string{"GraphQL"},
		MaxBodyBytes: maxProxyBodyBytes,
	}, s.handleGraphQL)
}

// GraphQLInput wraps a GraphQL request for Huma.
type GraphQLInput struct {
	Body storefront.GraphQLRequest
}

// GraphQLOutput carries the upstream payload verbatim.
type GraphQLOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func (s *Server) handleGraphQL(ctx context.Context, input *GraphQLInput) (*GraphQLOutput, error) {
	if s.services == nil || s.services.GraphQL == nil {
		return nil, domainerrors.Unavailable("graphql proxy is not configured")
	}

	body, err := s.services.GraphQL.Raw(ctx, input.Body)
	if err != nil {
		return nil, s.proxyError(ctx, input.Body.OperationName, err)
	}

	return &GraphQLOutput{
		ContentType: "application/json",
		Body:        body,
	}, nil
}

// proxyError hides upstream details from the client and keeps them in the log.
func (s *Server) proxyError(ctx context.Context, operation string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, storefront.ErrRateLimited):
		return domainerrors.ErrUnavailable.WithCause(err)
	}

	logger.FromContext(ctx, s.logger).Error("graphql proxy failed",
		"operation", operation,
		"error", err,
	)
	return domainerrors.Wrap(err, domainerrors.CodeUpstream, "storefront request failed")
}
