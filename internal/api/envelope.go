package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/reusemarket/storefront/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in response.Envelope.
// Error bodies become {success:false, error:{...}}; 2xx bodies become
// {success:true, data:...}. Raw []byte bodies never reach transformers.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case response.Envelope, *response.Envelope:
		return v, nil
	case *APIError:
		return response.Envelope{
			Version: response.Version,
			Error: &response.ErrorBody{
				Code:    body.Code,
				Message: body.Message,
				Details: body.Details,
			},
		}, nil
	}

	if strings.HasPrefix(status, "2") {
		return response.OK(v), nil
	}
	return v, nil
}
