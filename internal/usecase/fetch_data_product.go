package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sample-app/internal/domain"
)

// brokerTimestampLayout renders UTC as "+00:00", the form the broker expects.
const brokerTimestampLayout = "2006-01-02T15:04:05-07:00"

// FetchDataProduct signs a product request and sends it to the broker.
type FetchDataProduct struct {
	api    domain.BrokerAPI
	signer domain.RequestSigner
	appID  string
	now    func() time.Time
	logger *slog.Logger
}

// NewFetchDataProduct creates a new FetchDataProduct usecase.
func NewFetchDataProduct(api domain.BrokerAPI, signer domain.RequestSigner, appID string, l *slog.Logger) *FetchDataProduct {
	return &FetchDataProduct{api: api, signer: signer, appID: appID, now: time.Now, logger: l}
}

// Execute builds, signs, and forwards the request.
func (uc *FetchDataProduct) Execute(ctx context.Context, productCode string, parameters map[string]any) (*domain.UpstreamResponse, error) {
	if productCode == "" {
		return nil, fmt.Errorf("%w: productCode is required", domain.ErrInvalidRequest)
	}
	if parameters == nil {
		parameters = map[string]any{}
	}

	req := domain.DataProductRequest{
		Timestamp:   uc.now().UTC().Format(brokerTimestampLayout),
		ProductCode: productCode,
		Parameters:  parameters,
	}

	signature, err := uc.signer.Sign(req.SigningPayload())
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to sign product request", "product_code", productCode, "error", err)
		return nil, err
	}

	resp, err := uc.api.FetchDataProduct(ctx, domain.SignedProductRequest{
		Request:   req,
		AppID:     uc.appID,
		Signature: signature,
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "broker request failed", "product_code", productCode, "error", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "data product fetched", "product_code", productCode, "status", resp.StatusCode)
	return resp, nil
}
