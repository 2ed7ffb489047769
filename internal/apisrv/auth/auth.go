package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nutrishop/shop-manager/internal/auth/jwt"
	"github.com/nutrishop/shop-manager/internal/entity"
	gerr "github.com/nutrishop/shop-manager/internal/errors"
)

// Config contains the configuration for the auth middleware.
type Config struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	AdminRole string `mapstructure:"admin_role"`
}

// Server guards admin routes with bearer tokens.
type Server struct {
	JwtAuth   *jwtauth.JWTAuth
	adminRole string
}

// New creates a new auth server.
func New(c *Config) (*Server, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("auth: jwt secret is empty")
	}
	role := c.AdminRole
	if role == "" {
		role = string(entity.RoleAdmin)
	}
	return &Server{
		JwtAuth:   jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		adminRole: role,
	}, nil
}

// IssueToken mints a token for subject carrying role.
func (s *Server) IssueToken(subject, role string, ttl time.Duration) (string, error) {
	return jwt.NewTokenWithClaims(s.JwtAuth, ttl, jwt.Claims{Subject: subject, Role: role})
}

// RequireAdmin rejects requests without a valid token with 401 and
// requests whose role claim is not the admin role with 403.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return jwtauth.Verifier(s.JwtAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token, claims, err := jwtauth.FromContext(ctx)
		if err != nil || token == nil {
			slog.Default().DebugContext(ctx, "unauthenticated admin request",
				slog.String("path", r.URL.Path),
				slog.Any("err", err),
			)
			gerr.Render(w, r, gerr.ErrUnauthorized)
			return
		}
		c := jwt.ClaimsFromMap(token.Subject(), claims)
		if c.Role != s.adminRole {
			slog.Default().WarnContext(ctx, "forbidden admin request",
				slog.String("path", r.URL.Path),
				slog.String("sub", c.Subject),
				slog.String("role", c.Role),
			)
			gerr.Render(w, r, gerr.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
