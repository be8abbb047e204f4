package domain

// DataProductRequest is the body sent to the broker. Field names follow the
// broker contract.
type DataProductRequest struct {
	Timestamp   string         `json:"timestamp"`
	ProductCode string         `json:"productCode"`
	Parameters  map[string]any `json:"parameters"`
}

// SigningPayload returns the request as a generic map, the form the signature is
// computed over.
func (r DataProductRequest) SigningPayload() map[string]any {
	return map[string]any{
		"timestamp":   r.Timestamp,
		"productCode": r.ProductCode,
		"parameters":  r.Parameters,
	}
}

// SignedProductRequest carries a broker request with its authentication headers.
type SignedProductRequest struct {
	Request   DataProductRequest
	AppID     string
	Signature string
}
