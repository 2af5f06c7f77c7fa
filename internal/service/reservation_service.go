package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/availability"
	"github.com/iliyamo/outdoor-rental/internal/logging"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/pricing"
	"github.com/iliyamo/outdoor-rental/internal/queue"
	"github.com/iliyamo/outdoor-rental/internal/repository"
)

// ErrMsgAlreadyReserved is the client message of a reservation conflict.
const ErrMsgAlreadyReserved = "outdoor already reserved for this period"

const publishTimeout = 3 * time.Second

// ReservationStore is the persistence the engine needs.
// *repository.ReservationRepo satisfies it.
type ReservationStore interface {
	FindOverlapping(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error)
	ListIntersecting(ctx context.Context, start, end model.Date, outdoorID *uint64) ([]model.ReservationDetail, error)
	ListByOutdoor(ctx context.Context, outdoorID uint64) ([]model.Reservation, error)
	Delete(ctx context.Context, id uint64) (*model.Reservation, error)
	WithOutdoorLock(ctx context.Context, outdoorID uint64, fn func(ctx context.Context, outdoor model.Outdoor, tx repository.ReservationTx) error) error
}

// EventPublisher delivers reservation events. *queue.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// ReservationInput is a request to book an outdoor for [StartDate, EndDate].
type ReservationInput struct {
	OutdoorID       uint64
	StartDate       model.Date
	EndDate         model.Date
	CustomerName    string
	CustomerContact string
	CustomerEmail   string
	Notes           *string
}

// ReservationService is the availability engine: conflict checks, atomic
// reservation creation, cancellation, per-day availability and occupancy
// reporting.
type ReservationService struct {
	outdoors     OutdoorStore
	reservations ReservationStore
	events       EventPublisher
}

// NewReservationService wires the engine. events may be nil, in which case
// nothing is published.
func NewReservationService(outdoors OutdoorStore, reservations ReservationStore, events EventPublisher) *ReservationService {
	return &ReservationService{outdoors: outdoors, reservations: reservations, events: events}
}

// CheckConflicts lists the reservations of outdoorID overlapping [start, end].
func (s *ReservationService) CheckConflicts(ctx context.Context, outdoorID uint64, start, end model.Date) ([]model.Reservation, error) {
	window, err := availability.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := s.outdoors.GetByID(ctx, outdoorID); err != nil {
		return nil, translate(err, "could not load outdoor")
	}
	rs, err := s.reservations.FindOverlapping(ctx, outdoorID, window.Start, window.End)
	if err != nil {
		return nil, translate(err, "could not check conflicts")
	}
	return rs, nil
}

// CreateReservation books the outdoor if no existing reservation overlaps.
// The conflict check and the insert run under the outdoor's row lock, so two
// concurrent requests for overlapping days cannot both succeed.
func (s *ReservationService) CreateReservation(ctx context.Context, in ReservationInput) (*model.ReservationReceipt, error) {
	window, err := availability.NewInterval(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, apperrors.NewValidationError("customer_name is required")
	}

	var (
		receipt     model.ReservationReceipt
		outdoorName string
	)
	err = s.reservations.WithOutdoorLock(ctx, in.OutdoorID, func(ctx context.Context, outdoor model.Outdoor, tx repository.ReservationTx) error {
		conflicts, err := tx.FindOverlapping(ctx, outdoor.ID, window.Start, window.End)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return apperrors.NewConflictError(ErrMsgAlreadyReserved).WithDetails(conflicts)
		}

		days := window.Days()
		res := model.Reservation{
			OutdoorID:       outdoor.ID,
			StartDate:       window.Start,
			EndDate:         window.End,
			Status:          model.StatusOccupied,
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerContact: strings.TrimSpace(in.CustomerContact),
			CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
			Notes:           in.Notes,
			TotalValue:      pricing.Price(outdoor.MonthlyPrice, days),
		}
		if err := tx.Insert(ctx, &res); err != nil {
			return err
		}
		receipt = model.ReservationReceipt{
			Reservation: res,
			Days:        days,
			DailyRate:   pricing.DailyRate(outdoor.MonthlyPrice),
		}
		outdoorName = outdoor.Name
		return nil
	})
	if err != nil {
		return nil, translate(err, "could not create reservation")
	}

	logging.FromContext(ctx).Info().
		Uint64("reservation_id", receipt.ID).
		Uint64("outdoor_id", receipt.OutdoorID).
		Str("start_date", receipt.StartDate.String()).
		Str("end_date", receipt.EndDate.String()).
		Msg("reservation created")
	s.publish(ctx, queue.NewReservationEvent(queue.EventReservationCreated, receipt.Reservation, outdoorName))
	return &receipt, nil
}

// CancelReservation deletes the reservation and returns it as it was.
func (s *ReservationService) CancelReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return nil, translate(err, "could not cancel reservation")
	}
	logging.FromContext(ctx).Info().Uint64("reservation_id", res.ID).Msg("reservation cancelled")
	s.publish(ctx, queue.NewReservationEvent(queue.EventReservationCancelled, *res, ""))
	return res, nil
}

// AvailableDates partitions every day of [start, end] for one outdoor.
func (s *ReservationService) AvailableDates(ctx context.Context, outdoorID uint64, start, end model.Date) (*model.AvailableDates, error) {
	window, err := availability.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := s.outdoors.GetByID(ctx, outdoorID); err != nil {
		return nil, translate(err, "could not load outdoor")
	}
	rs, err := s.reservations.FindOverlapping(ctx, outdoorID, window.Start, window.End)
	if err != nil {
		return nil, translate(err, "could not load reservations")
	}
	out := availability.AvailableDates(outdoorID, window, rs)
	return &out, nil
}

// OccupancyReport aggregates occupancy of active outdoors over [start, end].
func (s *ReservationService) OccupancyReport(ctx context.Context, start, end model.Date) (*model.OccupancyReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.NewValidationError("start and end dates are required")
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("report end date must be on or after start date")
	}
	booked, err := s.activeBookings(ctx, start, end)
	if err != nil {
		return nil, err
	}
	report, err := availability.Occupancy(start, end, booked)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByPeriod returns reservations intersecting [start, end] with their
// outdoor's name, location and monthly price.
func (s *ReservationService) ListByPeriod(ctx context.Context, start, end model.Date) ([]model.ReservationDetail, error) {
	window, err := availability.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	rs, err := s.reservations.ListIntersecting(ctx, window.Start, window.End, nil)
	if err != nil {
		return nil, translate(err, "could not list reservations")
	}
	return rs, nil
}

// ListByOutdoor returns every reservation of one outdoor, newest start first.
func (s *ReservationService) ListByOutdoor(ctx context.Context, outdoorID uint64) ([]model.Reservation, error) {
	if _, err := s.outdoors.GetByID(ctx, outdoorID); err != nil {
		return nil, translate(err, "could not load outdoor")
	}
	rs, err := s.reservations.ListByOutdoor(ctx, outdoorID)
	if err != nil {
		return nil, translate(err, "could not list reservations")
	}
	return rs, nil
}

// PublicCatalog lists active outdoors with the bookings that touch
// [start, end]. Customer data is left out.
func (s *ReservationService) PublicCatalog(ctx context.Context, start, end model.Date) ([]model.OutdoorAvailability, error) {
	window, err := availability.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	booked, err := s.activeBookings(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	out := make([]model.OutdoorAvailability, 0, len(booked))
	for _, ob := range booked {
		entry := model.OutdoorAvailability{
			Outdoor:        ob.Outdoor,
			Bookings:       make([]model.PublicBooking, 0, len(ob.Reservations)),
			FullyAvailable: len(ob.Reservations) == 0,
		}
		for _, r := range ob.Reservations {
			entry.Bookings = append(entry.Bookings, model.PublicBooking{ID: r.ID, StartDate: r.StartDate, EndDate: r.EndDate})
		}
		out = append(out, entry)
	}
	return out, nil
}

// activeBookings loads active outdoors (by name) and groups the reservations
// intersecting [start, end] under them. Reservations of inactive outdoors
// are dropped.
func (s *ReservationService) activeBookings(ctx context.Context, start, end model.Date) ([]availability.OutdoorBookings, error) {
	active := true
	outdoors, err := s.outdoors.List(ctx, model.OutdoorFilter{Active: &active})
	if err != nil {
		return nil, translate(err, "could not list outdoors")
	}
	rs, err := s.reservations.ListIntersecting(ctx, start, end, nil)
	if err != nil {
		return nil, translate(err, "could not list reservations")
	}

	byOutdoor := make(map[uint64][]model.Reservation, len(outdoors))
	for _, r := range rs {
		byOutdoor[r.OutdoorID] = append(byOutdoor[r.OutdoorID], r.Reservation)
	}
	out := make([]availability.OutdoorBookings, 0, len(outdoors))
	for _, o := range outdoors {
		out = append(out, availability.OutdoorBookings{Outdoor: o, Reservations: byOutdoor[o.ID]})
	}
	return out, nil
}

// publish sends ev without failing the request; delivery errors are logged.
func (s *ReservationService) publish(ctx context.Context, ev queue.ReservationEvent) {
	if s.events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pctx, ev); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("event_id", ev.EventID).Msg("reservation event not published")
	}
}
