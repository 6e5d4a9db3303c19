package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims represents the typed JWT issued to clients. The subject
// carries the account email; everything else rides on the registered claims.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// Email returns the subject claim.
func (c *AccessTokenClaims) Email() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
