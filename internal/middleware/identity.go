package middleware

// identity.go holds the context helpers shared across middleware files. The
// JWT middleware stores the verified principal; the cache and rate limiter
// read the subject id from it to build per-user keys.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/universe-repo/internal/auth"
)

const principalKey = "principal"

func setPrincipal(c echo.Context, p auth.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by JWTAuth, if any.
func PrincipalFrom(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(principalKey).(auth.Principal)
	return p, ok
}

// userID returns the authenticated subject id, or "anon" when the request
// carries no verified principal.
func userID(c echo.Context) string {
	if p, ok := PrincipalFrom(c); ok && p.HasSubject() {
		return p.SubjectID
	}
	return "anon"
}
