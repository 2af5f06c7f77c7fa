package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/model"
)

type ReportHandler struct {
	Reservations ReservationEngine
	now          func() time.Time
}

func NewReportHandler(reservations ReservationEngine) *ReportHandler {
	return &ReportHandler{Reservations: reservations, now: time.Now}
}

// Occupancy handles GET /v1/reports/occupancy. Without dates the window is
// January 1st of the current year through today.
func (h *ReportHandler) Occupancy(c echo.Context) error {
	today := model.DateOf(h.now().UTC())
	jan1 := model.NewDate(today.Year(), time.January, 1)

	start, end, err := queryPeriod(c, jan1, today)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := h.Reservations.OccupancyReport(ctx, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
