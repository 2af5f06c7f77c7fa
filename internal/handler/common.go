package handler // handler defines the HTTP handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/service"
)

// requestTimeout bounds the storage work of a single request.
const requestTimeout = 5 * time.Second

// maxCalendarDays caps windows that are expanded day by day in a response.
const maxCalendarDays = 731

// OutdoorRegistry is the outdoor CRUD surface used by handlers.
type OutdoorRegistry interface {
	List(ctx context.Context, f model.OutdoorFilter) ([]model.Outdoor, error)
	Get(ctx context.Context, id uint64) (*model.Outdoor, error)
	Create(ctx context.Context, in service.OutdoorInput) (*model.Outdoor, error)
	Update(ctx context.Context, id uint64, in service.OutdoorInput) (*model.Outdoor, error)
	Delete(ctx context.Context, id uint64) error
}

// ReservationEngine is the availability engine surface used by handlers.
type ReservationEngine interface {
	CheckConflicts(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, in service.ReservationInput) (*model.ReservationReceipt, error)
	CancelReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	AvailableDates(ctx context.Context, outdoorID uint64, start, end model.Date) (*model.AvailableDates, error)
	OccupancyReport(ctx context.Context, start, end model.Date) (*model.OccupancyReport, error)
	ListByPeriod(ctx context.Context, start, end model.Date) ([]model.ReservationDetail, error)
	ListByOutdoor(ctx context.Context, outdoorID uint64) ([]model.Reservation, error)
	PublicCatalog(ctx context.Context, start, end model.Date) ([]model.OutdoorAvailability, error)
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// bindAndValidate decodes the JSON body into req and runs the validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}

// getUserID extracts the user_id stored by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}

// queryDate parses a YYYY-MM-DD (or RFC 3339) query parameter, falling back
// to def when it is absent. A zero def makes the parameter required.
func queryDate(c echo.Context, name string, def model.Date) (model.Date, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		if def.IsZero() {
			return model.Date{}, apperrors.NewValidationError(name + " is required")
		}
		return def, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, apperrors.NewValidationError("invalid " + name + ", expected YYYY-MM-DD")
	}
	return d, nil
}

// queryPeriod reads start_date and end_date; zero defaults make them required.
func queryPeriod(c echo.Context, defStart, defEnd model.Date) (start, end model.Date, err error) {
	if start, err = queryDate(c, "start_date", defStart); err != nil {
		return
	}
	end, err = queryDate(c, "end_date", defEnd)
	return
}

// boundedWindow rejects windows longer than maxDays. Inverted windows pass
// through so the service reports them.
func boundedWindow(start, end model.Date, maxDays int) error {
	if end.Before(start) {
		return nil
	}
	if start.DaysUntil(end)+1 > maxDays {
		return apperrors.NewValidationError("period too long, at most " + strconv.Itoa(maxDays) + " days")
	}
	return nil
}
