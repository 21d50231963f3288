// Package storefront is a rate-limited client for the Shopify Storefront
// GraphQL API. It loads collections and the whole catalog as domain types and
// can forward arbitrary queries untouched.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/reusemarket/storefront/internal/domain"
	"github.com/reusemarket/storefront/internal/facet"
	"github.com/reusemarket/storefront/internal/ratelimit"
	"github.com/reusemarket/storefront/internal/validation"
)

const (
	// Outbound pacing per shop domain.
	defaultRPS   = 4.0
	defaultBurst = 8

	defaultTimeout    = 15 * time.Second
	defaultAPIVersion = "2024-10"
	defaultNamespace  = "custom"

	// maxResponseBytes caps how much of an upstream body is read.
	maxResponseBytes = 8 << 20

	tokenHeader     = "X-Shopify-Storefront-Access-Token"
	requestIDHeader = "X-Request-ID"
	userAgent       = "reusemarket-storefront/1.0"
)

// Config holds the connection settings for one shop.
type Config struct {
	Domain             string
	APIVersion         string
	PublicToken        string
	Timeout            time.Duration
	RPS                float64
	Burst              int
	PageSize           int
	MetafieldNamespace string
}

// Endpoint returns the GraphQL endpoint URL of the shop.
func (c Config) Endpoint() string {
	return fmt.Sprintf("https://%s/api/%s/graphql.json", c.Domain, c.APIVersion)
}

// GraphQLRequest is the POST body of a GraphQL call.
type GraphQLRequest struct {
	Query         string         `json:"query" minLength:"1" doc:"GraphQL document"`
	Variables     map[string]any `json:"variables,omitempty" doc:"Query variables"`
	OperationName string         `json:"operationName,omitempty" doc:"Operation to run when the document has several"`
}

// Client is a rate-limited Storefront API client.
type Client struct {
	cfg       Config
	endpoint  string
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	validator *validation.Validator
	logger    *slog.Logger
	keys      func() []string
}

// Option configures a Client.
type Option func(*Client)

// WithMetafieldKeys sets the source of metafield keys requested for every
// product. It is called per request so reloaded facet definitions apply
// immediately.
func WithMetafieldKeys(keys func() []string) Option {
	return func(c *Client) {
		c.keys = keys
	}
}

// New creates a Storefront client. Zero config values fall back to defaults.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg.Domain == "" {
		return nil, errors.New("storefront: domain is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MetafieldNamespace == "" {
		cfg.MetafieldNamespace = defaultNamespace
	}

	c := &Client{
		cfg:       cfg,
		endpoint:  cfg.Endpoint(),
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   ratelimit.New(cfg.RPS, cfg.Burst),
		validator: validation.New(),
		logger:    logger,
		keys:      facet.DefaultDefinitions().Keys,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// CollectionByHandle loads one page of a collection's products.
// A collection the shop does not have returns ErrNotFound.
func (c *Client) CollectionByHandle(ctx context.Context, handle string, page PageParams, in InContext) (*domain.Collection, error) {
	vars := c.variables(page, in)
	vars["handle"] = handle

	var data collectionData
	if err := c.query(ctx, GraphQLRequest{Query: collectionQuery, Variables: vars, OperationName: "Collection"}, &data); err != nil {
		return nil, wrapError("collection", handle, err)
	}
	if data.Collection == nil {
		return nil, wrapError("collection", handle, ErrNotFound)
	}

	raw := data.Collection
	return &domain.Collection{
		ID:          raw.ID,
		Handle:      raw.Handle,
		Title:       raw.Title,
		Description: raw.Description,
		Products:    decodeProducts(raw.Products.Nodes, c.validator, c.logger),
		PageInfo:    raw.Products.PageInfo.toDomain(),
	}, nil
}

// Catalog loads one page of every product in the shop as a pseudo collection
// with handle domain.CatalogHandle.
func (c *Client) Catalog(ctx context.Context, page PageParams, in InContext) (*domain.Collection, error) {
	var data catalogData
	req := GraphQLRequest{Query: catalogQuery, Variables: c.variables(page, in), OperationName: "Catalog"}
	if err := c.query(ctx, req, &data); err != nil {
		return nil, wrapError("catalog", "", err)
	}

	return &domain.Collection{
		Handle:   domain.CatalogHandle,
		Title:    "All Products",
		Products: decodeProducts(data.Products.Nodes, c.validator, c.logger),
		PageInfo: data.Products.PageInfo.toDomain(),
	}, nil
}

// Raw forwards req and returns the upstream JSON body untouched, GraphQL
// errors included. Only transport failures and non-200 statuses are errors.
func (c *Client) Raw(ctx context.Context, req GraphQLRequest) ([]byte, error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, wrapError("raw", "", err)
	}
	return body, nil
}

func (c *Client) variables(page PageParams, in InContext) map[string]any {
	vars := page.variables(c.cfg.PageSize)
	for k, v := range in.variables() {
		vars[k] = v
	}

	keys := c.keys()
	identifiers := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		identifiers = append(identifiers, map[string]string{
			"namespace": c.cfg.MetafieldNamespace,
			"key":       key,
		})
	}
	vars["metafields"] = identifiers
	return vars
}

// query runs a typed query and decodes its data into out.
func (c *Client) query(ctx context.Context, req GraphQLRequest, out any) error {
	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return &GraphQLError{Errors: resp.Errors}
	}
	if len(resp.Data) == 0 || bytes.Equal(resp.Data, []byte("null")) {
		return fmt.Errorf("%w: response has no data", ErrServer)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// do executes a GraphQL POST with rate limiting.
func (c *Client) do(ctx context.Context, gql GraphQLRequest) ([]byte, error) {
	if err := c.limiter.Wait(ctx, c.cfg.Domain); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(gql)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := middleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(tokenHeader, c.cfg.PublicToken)
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Debug("storefront request",
		"operation", gql.OperationName,
		"request_id", requestID,
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrServer, maxResponseBytes)
	}

	c.logger.Debug("storefront response",
		"operation", gql.OperationName,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: endpoint %s not found", ErrBadRequest, c.endpoint)
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
