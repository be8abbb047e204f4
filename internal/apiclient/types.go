package apiclient

// SessionID is the unique identifier of an authenticated principal. Identity
// lookups take a SessionID so that the id flows from a fetched Session.
type SessionID string

// sessionIDClaim is the claim holding the principal identifier.
const sessionIDClaim = "@id"

// Session holds the claims returned by /me.
type Session struct {
	Claims map[string]any
}

// ID returns the principal identifier and whether it was present.
func (s Session) ID() (SessionID, bool) {
	id, ok := s.Claims[sessionIDClaim].(string)
	if !ok || id == "" {
		return "", false
	}
	return SessionID(id), true
}

// Identity is the identity record of a session principal.
type Identity struct {
	Record map[string]any
}

// DataProduct is the payload returned by the broker for a product request.
type DataProduct struct {
	Payload map[string]any
}

// dataProductRequest is the body of POST /fetch-data-product.
type dataProductRequest struct {
	ProductCode string         `json:"productCode"`
	Parameters  map[string]any `json:"parameters"`
}
