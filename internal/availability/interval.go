// Package availability holds the day-range arithmetic behind conflict
// detection, per-day availability and occupancy reports. Everything here
// is pure: callers fetch reservations and hand them in.
package availability

import (
	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

// Interval is a closed range of calendar days. A valid interval has
// Start <= End; NewInterval enforces that.
type Interval struct {
	Start model.Date
	End   model.Date
}

// NewInterval validates start <= end.
func NewInterval(start, end model.Date) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, apperrors.NewValidationError("start and end dates are required")
	}
	if end.Before(start) {
		return Interval{}, apperrors.NewValidationError("end date must be on or after start date")
	}
	return Interval{Start: start, End: end}, nil
}

// Of returns the interval booked by r.
func Of(r model.Reservation) Interval {
	return Interval{Start: r.StartDate, End: r.EndDate}
}

// Overlaps reports whether i and o share at least one day:
// i.Start <= o.End && i.End >= o.Start.
func (i Interval) Overlaps(o Interval) bool {
	return !i.Start.After(o.End) && !i.End.Before(o.Start)
}

// Contains reports whether d falls inside i.
func (i Interval) Contains(d model.Date) bool {
	return !d.Before(i.Start) && !d.After(i.End)
}

// Days is the inclusive day count, e.g. 2025-03-01..2025-03-10 is 10.
func (i Interval) Days() int {
	return i.Start.DaysUntil(i.End) + 1
}

// Clip returns the part of i inside w; ok is false when they do not overlap.
func (i Interval) Clip(w Interval) (clipped Interval, ok bool) {
	if !i.Overlaps(w) {
		return Interval{}, false
	}
	return Interval{Start: model.MaxDate(i.Start, w.Start), End: model.MinDate(i.End, w.End)}, true
}

// ClippedDays is min(i.End, w.End) - max(i.Start, w.Start) + 1 for
// overlapping intervals and 0 otherwise.
func (i Interval) ClippedDays(w Interval) int {
	c, ok := i.Clip(w)
	if !ok {
		return 0
	}
	return c.Days()
}

// Each calls fn for every day of i in ascending order and stops early when
// fn returns false.
func (i Interval) Each(fn func(model.Date) bool) {
	for d := i.Start; !d.After(i.End); d = d.AddDays(1) {
		if !fn(d) {
			return
		}
	}
}

// Conflicts returns the reservations in rs overlapping want, keeping order.
func Conflicts(want Interval, rs []model.Reservation) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, r := range rs {
		if Of(r).Overlaps(want) {
			out = append(out, r)
		}
	}
	return out
}
