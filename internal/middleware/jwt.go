package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/tablereserve/table-reserve/internal/auth"
)

// principalKey is the context key under which JWTAuth stores the resolved
// principal.  Handlers read it back through CurrentPrincipal.
const principalKey = "principal"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the resolved principal into the request context.  The secret
// must match the one used when issuing tokens.  Verification is purely
// cryptographic: the signature and exp claim are checked, but no database
// lookup happens here, so an authorization failure short-circuits before any
// resource is touched.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer " followed by the JWT.
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			// Parse with the HS256 secret.  The callback pins the signing
			// method so a token signed with a different algorithm is
			// rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				// Covers bad signatures and expired tokens alike.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			p, ok := principalFromClaims(claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			SetPrincipal(c, p)
			return next(c)
		}
	}
}

// principalFromClaims converts MapClaims into a Principal.  Numeric JSON
// values decode as float64, so the subject needs an explicit conversion.
func principalFromClaims(claims jwt.MapClaims) (*auth.Principal, bool) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, false
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, false
	}
	email, _ := claims["email"].(string)
	return &auth.Principal{ID: uint64(sub), Email: email, Role: role}, true
}

// SetPrincipal stores a principal in the request context.  JWTAuth uses it
// after verifying a token; handler tests use it to simulate authenticated
// requests without minting tokens.
func SetPrincipal(c echo.Context, p *auth.Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the principal stored by JWTAuth, or nil when the
// request was not authenticated (e.g. on routes without the middleware).
func CurrentPrincipal(c echo.Context) *auth.Principal {
	p, _ := c.Get(principalKey).(*auth.Principal)
	return p
}
