// Package auth inspects stored bearer tokens for diagnostic output. Token
// verification is the server's job; nothing here validates a signature.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// TokenInfo is the decoded, unverified view of a bearer token.
type TokenInfo struct {
	Subject   string
	OrgID     string
	ExpiresAt time.Time
	Expired   bool
}

// InspectToken decodes a JWT without verifying it, for doctor output.
// Malformed tokens fail with a VALIDATION_ERROR.
func InspectToken(token string) (*TokenInfo, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, contracts.NewValidationError("token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, contracts.NewValidationError("token: unexpected claims type")
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if org, ok := claims["org_id"].(string); ok {
		info.OrgID = org
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = exp.Time.Before(time.Now())
	}
	return info, nil
}
