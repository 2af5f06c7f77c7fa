package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/handler"
	"github.com/iliyamo/outdoor-rental/internal/middleware"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

// RegisterOutdoors mounts the outdoor registry under /v1/outdoors. Reads and
// the availability views are open to all staff; writes need ADMIN.
func RegisterOutdoors(e *echo.Echo, h *handler.OutdoorHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/outdoors", middleware.JWTAuth(jwtSecret), limit, staff())
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/availability", h.Availability)
	g.GET("/:id/conflicts", h.Conflicts)
	g.GET("/:id/reservations", h.ListReservations)

	admin := middleware.RequireRole(model.RoleAdmin)
	g.POST("", h.Create, admin)
	g.PUT("/:id", h.Update, admin)
	g.DELETE("/:id", h.Delete, admin)
}
