package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/service"
)

// OutdoorHandler serves the outdoor registry and the per-outdoor
// availability views.
type OutdoorHandler struct {
	Outdoors     OutdoorRegistry
	Reservations ReservationEngine
}

func NewOutdoorHandler(outdoors OutdoorRegistry, reservations ReservationEngine) *OutdoorHandler {
	return &OutdoorHandler{Outdoors: outdoors, Reservations: reservations}
}

type outdoorReq struct {
	Name         string           `json:"name" validate:"required,max=255"`
	Location     string           `json:"location" validate:"required,max=255"`
	Dimensions   string           `json:"dimensions" validate:"required,max=100"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price" validate:"required"`
	PhotoURL     *string          `json:"photo_url" validate:"omitempty,url,max=500"`
	Description  *string          `json:"description"`
	Active       *bool            `json:"active"`
}

func (r outdoorReq) input(defaultActive bool) service.OutdoorInput {
	active := defaultActive
	if r.Active != nil {
		active = *r.Active
	}
	return service.OutdoorInput{
		Name:         r.Name,
		Location:     r.Location,
		Dimensions:   r.Dimensions,
		MonthlyPrice: *r.MonthlyPrice,
		PhotoURL:     r.PhotoURL,
		Description:  r.Description,
		Active:       active,
	}
}

// List handles GET /v1/outdoors[?active=true|false].
func (h *OutdoorHandler) List(c echo.Context) error {
	var f model.OutdoorFilter
	if raw := c.QueryParam("active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return respondError(c, apperrors.NewValidationError("active must be true or false"))
		}
		f.Active = &b
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.Outdoors.List(ctx, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OutdoorHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	o, err := h.Outdoors.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Create handles POST /v1/outdoors. active defaults to true.
func (h *OutdoorHandler) Create(c echo.Context) error {
	var req outdoorReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	o, err := h.Outdoors.Create(ctx, req.input(true))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

// Update handles PUT /v1/outdoors/:id, a full replace: active must be sent.
func (h *OutdoorHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req outdoorReq
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Active == nil {
		return respondError(c, apperrors.NewValidationError("validation failed").
			WithDetails([]FieldError{{Field: "active", Message: "is required"}}))
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	o, err := h.Outdoors.Update(ctx, id, req.input(true))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Delete handles DELETE /v1/outdoors/:id. Reservations are removed with it.
func (h *OutdoorHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Outdoors.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Availability handles GET /v1/outdoors/:id/availability?start_date&end_date.
func (h *OutdoorHandler) Availability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	start, end, err := queryPeriod(c, model.Date{}, model.Date{})
	if err != nil {
		return respondError(c, err)
	}
	if err := boundedWindow(start, end, maxCalendarDays); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Reservations.AvailableDates(ctx, id, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type conflictResp struct {
	Available bool                `json:"available"`
	Conflicts []model.Reservation `json:"conflicts"`
	Message   string              `json:"message"`
}

// Conflicts handles GET /v1/outdoors/:id/conflicts?start_date&end_date.
func (h *OutdoorHandler) Conflicts(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	start, end, err := queryPeriod(c, model.Date{}, model.Date{})
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rs, err := h.Reservations.CheckConflicts(ctx, id, start, end)
	if err != nil {
		return respondError(c, err)
	}
	resp := conflictResp{Available: len(rs) == 0, Conflicts: rs, Message: "outdoor available for this period"}
	if !resp.Available {
		resp.Message = service.ErrMsgAlreadyReserved
	}
	return c.JSON(http.StatusOK, resp)
}

// ListReservations handles GET /v1/outdoors/:id/reservations.
func (h *OutdoorHandler) ListReservations(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rs, err := h.Reservations.ListByOutdoor(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rs)
}
