package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/service"
)

// ReservationHandler serves the reservation ledger.
type ReservationHandler struct {
	Reservations ReservationEngine
}

func NewReservationHandler(reservations ReservationEngine) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type reservationReq struct {
	OutdoorID       uint64     `json:"outdoor_id" validate:"required"`
	StartDate       model.Date `json:"start_date"`
	EndDate         model.Date `json:"end_date"`
	CustomerName    string     `json:"customer_name" validate:"required,max=255"`
	CustomerContact string     `json:"customer_contact" validate:"max=100"`
	CustomerEmail   string     `json:"customer_email" validate:"omitempty,email,max=255"`
	Notes           *string    `json:"notes"`
}

// Create handles POST /v1/reservations. Overlaps with an existing booking
// answer 409 with the conflicting rows under "details".
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	receipt, err := h.Reservations.CreateReservation(ctx, service.ReservationInput{
		OutdoorID:       req.OutdoorID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		CustomerEmail:   req.CustomerEmail,
		Notes:           req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

// List handles GET /v1/reservations?start_date&end_date.
func (h *ReservationHandler) List(c echo.Context) error {
	start, end, err := queryPeriod(c, model.Date{}, model.Date{})
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rs, err := h.Reservations.ListByPeriod(ctx, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rs)
}

// Cancel handles DELETE /v1/reservations/:id and returns the removed row.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Reservations.CancelReservation(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled", "reservation": res})
}
