package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// RoleClaim is the private claim carrying the caller's role.
const RoleClaim = "role"

// Claims are the identity fields carried by an access token.
type Claims struct {
	Subject string
	Role    string
}

// ClaimsFromMap extracts Claims from a decoded private claim set.
func ClaimsFromMap(subject string, m map[string]interface{}) *Claims {
	c := &Claims{Subject: subject}
	if role, ok := m[RoleClaim].(string); ok {
		c.Role = role
	}
	if c.Subject == "" {
		if sub, ok := m["sub"].(string); ok {
			c.Subject = sub
		}
	}
	return c
}

// NewTokenWithClaims creates a JWT with optional subject and role claims.
func NewTokenWithClaims(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, c Claims) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive: %s", ttl)
	}
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
	}
	if c.Subject != "" {
		claims["sub"] = c.Subject
	}
	if c.Role != "" {
		claims[RoleClaim] = c.Role
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}
