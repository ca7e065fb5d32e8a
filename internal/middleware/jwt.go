package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/universe-repo/internal/auth" // token codec and principal type
)

// FreshVerifier is the strict token check used to authorize a request.
type FreshVerifier interface {
	VerifyFresh(token string) (auth.Principal, error)
}

// JWTAuth returns an Echo middleware that rejects requests without a valid,
// unexpired Bearer access token. The verified principal is stored in the
// context for downstream middleware (see PrincipalFrom); handlers resolve
// the requester from the raw header themselves.
func JWTAuth(v FreshVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the token.
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(h, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

			// Signature, issuer, audience and expiry are all checked here.
			p, err := v.VerifyFresh(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			setPrincipal(c, p)
			return next(c)
		}
	}
}
