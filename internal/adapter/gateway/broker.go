package gateway

import (
	"context"
	"net/http"
	"strings"

	"sample-app/internal/domain"
)

const (
	headerAppID     = "x-pot-app"
	headerSignature = "x-pot-signature"
)

// BrokerGateway fetches data products from the product gateway. Implements
// domain.BrokerAPI.
type BrokerGateway struct {
	baseURL string
	client  *http.Client
}

// NewBrokerGateway creates a gateway for the broker API at baseURL.
func NewBrokerGateway(baseURL string, client *http.Client) *BrokerGateway {
	return &BrokerGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// FetchDataProduct posts a signed product request.
func (g *BrokerGateway) FetchDataProduct(ctx context.Context, req domain.SignedProductRequest) (*domain.UpstreamResponse, error) {
	body, err := jsonBody(req.Request)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(headerAppID, req.AppID)
	header.Set(headerSignature, req.Signature)

	return forward(ctx, g.client, http.MethodPost, g.baseURL+"/fetch-data-product", body, header)
}
