package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/handler"
	"github.com/iliyamo/outdoor-rental/internal/middleware"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterAuth mounts register/login/refresh/logout under /v1/auth and the
// authenticated profile at /v1/me. limit is applied to the credential
// endpoints only.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// logout accepts either a refresh token in the body or a bearer token
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret), staff())
}

// RegisterPublic mounts the unauthenticated catalog. cache wraps it so a
// burst of anonymous traffic is answered from Redis.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, limit, cache echo.MiddlewareFunc) {
	e.GET("/v1/public/outdoors", p.Catalog, limit, cache)
}

// staff admits both dashboard roles.
func staff() echo.MiddlewareFunc {
	return middleware.RequireRole(model.RoleAdmin, model.RoleOperator)
}
