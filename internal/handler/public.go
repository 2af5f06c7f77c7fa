package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/model"
)

// catalogWindowDays is the public catalog's default look-ahead.
const catalogWindowDays = 30

// PublicHandler serves unauthenticated read-only endpoints.
type PublicHandler struct {
	Reservations ReservationEngine
	now          func() time.Time
}

func NewPublicHandler(reservations ReservationEngine) *PublicHandler {
	return &PublicHandler{Reservations: reservations, now: time.Now}
}

// Catalog handles GET /v1/public/outdoors: active outdoors with their
// bookings between start_date and end_date (default today..today+30).
func (h *PublicHandler) Catalog(c echo.Context) error {
	today := model.DateOf(h.now().UTC())
	start, end, err := queryPeriod(c, today, today.AddDays(catalogWindowDays))
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.Reservations.PublicCatalog(ctx, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"period":   model.Period{Start: start, End: end},
		"outdoors": items,
	})
}
