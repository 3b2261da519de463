package contracts

// JWK is one platform verification key, published as an OKP/Ed25519 key.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	KID string `json:"kid"`
	Use string `json:"use,omitempty"`
}

// JWKS is the body of GET /.well-known/elydora/jwks.json.
type JWKS struct {
	Keys []JWK `json:"keys"`
}
