package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/universe-repo/internal/handler"    // HTTP handlers
	"github.com/iliyamo/universe-repo/internal/middleware" // JWT, cache and rate limit middleware
)

// Deps is everything the routes need. Cache and RateLimit may be
// pass-through middleware when Redis is not configured.
type Deps struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Repositories *handler.RepositoryHandler
	Verifier     middleware.FreshVerifier
	Cache        echo.MiddlewareFunc
	RateLimit    echo.MiddlewareFunc
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the /v1 API. Login and user registration are open
// and rate limited; everything else requires a fresh bearer token.
func RegisterAPI(e *echo.Echo, d Deps) {
	v1 := e.Group("/v1")

	// anonymous, rate limited per client
	v1.POST("/login", d.Auth.Login, d.RateLimit)
	v1.POST("/users", d.Users.Register, d.RateLimit)

	// bearer-protected
	authed := v1.Group("", middleware.JWTAuth(d.Verifier))

	authed.GET("/users/me", d.Users.Me)
	authed.GET("/users/:id", d.Users.Get)
	authed.PUT("/users", d.Users.Update)
	authed.DELETE("/users/me", d.Users.Disable)

	authed.GET("/repositories", d.Repositories.ListOwned)
	authed.GET("/repositories/search", d.Repositories.Search, d.Cache)
	authed.GET("/repositories/:id", d.Repositories.Get)
	authed.POST("/repositories", d.Repositories.Register)
	authed.PUT("/repositories", d.Repositories.Update)
	authed.PUT("/repositories/content", d.Repositories.SyncContents)
	authed.DELETE("/repositories/:id", d.Repositories.Delete)
}
