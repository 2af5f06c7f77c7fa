package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/handler"
	"github.com/iliyamo/outdoor-rental/internal/middleware"
)

// RegisterReservations mounts the reservation ledger and the occupancy
// report. Both dashboard roles may book, cancel and report.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, r *handler.ReportHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), limit, staff())
	g.GET("/reservations", h.List)
	g.POST("/reservations", h.Create)
	g.DELETE("/reservations/:id", h.Cancel)
	g.GET("/reports/occupancy", r.Occupancy)
}
