package availability

import (
	"math"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

// Partition walks every day of window once and sorts it into occupied (inside
// any booked interval) or available. The two slices are ascending, disjoint
// and together hold window.Days() entries.
func Partition(window Interval, booked []Interval) (available, occupied []model.Date) {
	available = make([]model.Date, 0)
	occupied = make([]model.Date, 0)
	window.Each(func(d model.Date) bool {
		for _, b := range booked {
			if b.Contains(d) {
				occupied = append(occupied, d)
				return true
			}
		}
		available = append(available, d)
		return true
	})
	return available, occupied
}

// AvailableDates builds the per-day view of one outdoor over window from its
// reservations. Reservations outside the window are ignored.
func AvailableDates(outdoorID uint64, window Interval, rs []model.Reservation) model.AvailableDates {
	booked := make([]Interval, 0, len(rs))
	for _, r := range rs {
		booked = append(booked, Of(r))
	}
	avail, occ := Partition(window, booked)
	return model.AvailableDates{
		OutdoorID:      outdoorID,
		Period:         model.Period{Start: window.Start, End: window.End},
		AvailableDays:  formatDays(avail),
		OccupiedDays:   formatDays(occ),
		TotalDays:      len(avail) + len(occ),
		TotalAvailable: len(avail),
		TotalOccupied:  len(occ),
	}
}

func formatDays(ds []model.Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// OutdoorBookings pairs an active outdoor with its reservations touching a
// reporting window.
type OutdoorBookings struct {
	Outdoor      model.Outdoor
	Reservations []model.Reservation
}

// Occupancy aggregates a report over [start, end]. Per outdoor the occupied
// days are the clipped overlaps summed over its reservations; the headline
// rate is the mean of per-outdoor rates, both rounded to two decimals.
func Occupancy(start, end model.Date, outdoors []OutdoorBookings) (model.OccupancyReport, error) {
	periodDays := start.DaysUntil(end) + 1
	if periodDays <= 0 {
		return model.OccupancyReport{}, apperrors.NewValidationError("report end date must be on or after start date")
	}
	window := Interval{Start: start, End: end}

	report := model.OccupancyReport{
		Period:        model.Period{Start: start, End: end},
		PeriodDays:    periodDays,
		TotalOutdoors: len(outdoors),
		Outdoors:      make([]model.OutdoorOccupancy, 0, len(outdoors)),
	}
	var rateSum float64
	for _, ob := range outdoors {
		occupied := 0
		for _, r := range ob.Reservations {
			occupied += Of(r).ClippedDays(window)
		}
		rate := float64(occupied) / float64(periodDays) * 100
		rateSum += rate
		report.TotalOccupiedDays += occupied
		report.Outdoors = append(report.Outdoors, model.OutdoorOccupancy{
			OutdoorID:     ob.Outdoor.ID,
			OutdoorName:   ob.Outdoor.Name,
			OccupiedDays:  occupied,
			OccupancyRate: round2(rate),
		})
	}
	report.TotalAvailableDays = len(outdoors)*periodDays - report.TotalOccupiedDays
	if len(outdoors) > 0 {
		report.AverageOccupancyRate = round2(rateSum / float64(len(outdoors)))
	}
	return report, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
