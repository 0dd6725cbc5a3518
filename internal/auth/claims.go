package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read from a token without the signing key.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time // zero when the token has no expiry
}

// Expired reports whether the token expiry has passed at now.
func (ti TokenInfo) Expired(now time.Time) bool {
	return !ti.ExpiresAt.IsZero() && now.After(ti.ExpiresAt)
}

// Inspect decodes a token's claims without verifying the signature. Only the
// backend can verify; the client uses this to show the expiry.
func Inspect(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("parse token: %w", err)
	}
	var ti TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		ti.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ti.ExpiresAt = exp.Time
	}
	if ti.Subject == "" {
		if id, ok := claims["id"].(string); ok {
			ti.Subject = id
		}
	}
	return ti, nil
}
