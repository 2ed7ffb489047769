package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verify(t *testing.T, jwtAuth *jwtauth.JWTAuth, tok string) (*Claims, error) {
	t.Helper()
	jt, err := jwtauth.VerifyToken(jwtAuth, tok)
	if err != nil {
		return nil, err
	}
	return ClaimsFromMap(jt.Subject(), jt.PrivateClaims()), nil
}

func TestTokenWithoutClaims(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)
	tok, err := NewTokenWithClaims(jwtAuth, time.Hour, Claims{})
	assert.NoError(t, err)

	c, err := verify(t, jwtAuth, tok)
	assert.NoError(t, err)
	assert.Empty(t, c.Subject)
	assert.Empty(t, c.Role)
}

func TestTokenWithClaims(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)
	tok, err := NewTokenWithClaims(jwtAuth, time.Hour, Claims{Subject: "ops@nutrishop.io", Role: "ADMIN"})
	require.NoError(t, err)

	c, err := verify(t, jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "ops@nutrishop.io", c.Subject)
	assert.Equal(t, "ADMIN", c.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokenWithClaims(jwtauth.New("HS256", []byte("secret"), nil), time.Hour, Claims{Role: "ADMIN"})
	require.NoError(t, err)

	_, err = verify(t, jwtauth.New("HS256", []byte("other"), nil), tok)
	assert.Error(t, err)
}

func TestTokenNonPositiveTTL(t *testing.T) {
	_, err := NewTokenWithClaims(jwtauth.New("HS256", []byte("secret"), nil), 0, Claims{})
	assert.Error(t, err)
}

func TestClaimsFromMapSubjectFallback(t *testing.T) {
	c := ClaimsFromMap("", map[string]interface{}{"sub": "ops", RoleClaim: "ADMIN", "other": 1})
	assert.Equal(t, &Claims{Subject: "ops", Role: "ADMIN"}, c)
}
