package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"storefront": s.checkStorefront(),
		"facets":     s.checkFacets(),
	}

	overall := "healthy"
	for _, c := range components {
		switch c.Status {
		case "unhealthy":
			overall = "unhealthy"
		case "degraded":
			if overall == "healthy" {
				overall = "degraded"
			}
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkStorefront reports whether collection pages can be served. It does
// not call the shop: health checks must not spend the API quota.
func (s *Server) checkStorefront() ComponentHealth {
	if s.services == nil || s.services.Collection == nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "collection service not configured",
		}
	}
	if s.services.GraphQL == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "graphql proxy not configured",
		}
	}
	return ComponentHealth{Status: "healthy"}
}

func (s *Server) checkFacets() ComponentHealth {
	if s.services == nil || s.services.Facets == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "facet registry not configured",
		}
	}

	catalog := s.services.Facets.Definitions()
	if len(catalog.Groups) == 0 {
		return ComponentHealth{
			Status:  "degraded",
			Message: "no facet definitions loaded",
		}
	}
	return ComponentHealth{
		Status: "healthy",
		Message: fmt.Sprintf("%d groups from %s, loaded %s",
			len(catalog.Groups), catalog.Source, catalog.LoadedAt.Format(time.RFC3339)),
	}
}
