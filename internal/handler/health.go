package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/outdoor-rental/internal/logging"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
    PingContext(ctx context.Context) error
}

// HealthHandler reports liveness for load balancers and monitoring. It pings
// the database so a lost connection shows up as 503.
type HealthHandler struct {
    DB Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler { return &HealthHandler{DB: db} }

func (h *HealthHandler) Health(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
    defer cancel()

    now := time.Now().UTC().Format(time.RFC3339)
    if err := h.DB.PingContext(ctx); err != nil {
        logging.FromContext(ctx).Error().Err(err).Msg("health: database ping failed")
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "timestamp": now})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "ok", "timestamp": now})
}
