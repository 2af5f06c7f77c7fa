package availability

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

func booking(id uint64, start, end string) model.Reservation {
	return model.Reservation{
		ID:        id,
		OutdoorID: 1,
		StartDate: model.MustParseDate(start),
		EndDate:   model.MustParseDate(end),
		Status:    model.StatusOccupied,
	}
}

func TestAvailableDates_Scenario(t *testing.T) {
	got := AvailableDates(1, iv("2025-03-01", "2025-03-12"), []model.Reservation{booking(1, "2025-03-01", "2025-03-10")})

	assert.Equal(t, 10, got.TotalOccupied)
	assert.Equal(t, 2, got.TotalAvailable)
	assert.Equal(t, 12, got.TotalDays)
	assert.Equal(t, "2025-03-01", got.OccupiedDays[0])
	assert.Equal(t, "2025-03-10", got.OccupiedDays[9])
	assert.Equal(t, []string{"2025-03-11", "2025-03-12"}, got.AvailableDays)
}

func TestPartition_CoversWindowExactlyOnce(t *testing.T) {
	window := iv("2025-02-20", "2025-04-05")
	booked := []Interval{iv("2025-02-01", "2025-02-22"), iv("2025-03-01", "2025-03-10"), iv("2025-04-05", "2025-05-01")}

	avail, occ := Partition(window, booked)
	assert.Equal(t, window.Days(), len(avail)+len(occ))

	seen := map[string]bool{}
	for _, d := range append(append([]model.Date{}, avail...), occ...) {
		assert.True(t, window.Contains(d))
		assert.False(t, seen[d.String()], "day %s listed twice", d)
		seen[d.String()] = true
	}
	for i := 1; i < len(avail); i++ {
		assert.True(t, avail[i-1].Before(avail[i]))
	}
	assert.Equal(t, 3+10+1, len(occ))
}

func TestOccupancy(t *testing.T) {
	a := model.Outdoor{ID: 1, Name: "Av. Principal", MonthlyPrice: decimal.NewFromInt(5000), Active: true}
	b := model.Outdoor{ID: 2, Name: "BR-101", MonthlyPrice: decimal.NewFromInt(8000), Active: true}
	start, end := model.MustParseDate("2025-03-01"), model.MustParseDate("2025-03-30")

	report, err := Occupancy(start, end, []OutdoorBookings{
		{Outdoor: a, Reservations: []model.Reservation{booking(1, "2025-02-25", "2025-03-05"), booking(2, "2025-03-20", "2025-04-10")}},
		{Outdoor: b},
	})
	require.NoError(t, err)

	assert.Equal(t, 30, report.PeriodDays)
	assert.Equal(t, 2, report.TotalOutdoors)
	assert.Equal(t, 5+11, report.TotalOccupiedDays)
	assert.Equal(t, 60-16, report.TotalAvailableDays)
	require.Len(t, report.Outdoors, 2)
	assert.Equal(t, 16, report.Outdoors[0].OccupiedDays)
	assert.Equal(t, 53.33, report.Outdoors[0].OccupancyRate)
	assert.Equal(t, 0.0, report.Outdoors[1].OccupancyRate)
	assert.Equal(t, 26.67, report.AverageOccupancyRate)
}

func TestOccupancy_EmptyWindowHasZeroRates(t *testing.T) {
	outdoors := []OutdoorBookings{{Outdoor: model.Outdoor{ID: 1}}, {Outdoor: model.Outdoor{ID: 2}}}
	report, err := Occupancy(model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"), outdoors)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalOccupiedDays)
	assert.Equal(t, 62, report.TotalAvailableDays)
	assert.Equal(t, 0.0, report.AverageOccupancyRate)
	for _, o := range report.Outdoors {
		assert.Equal(t, 0, o.OccupiedDays)
		assert.Equal(t, 0.0, o.OccupancyRate)
	}
}

func TestOccupancy_NoOutdoors(t *testing.T) {
	report, err := Occupancy(model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-10"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalOutdoors)
	assert.Equal(t, 0.0, report.AverageOccupancyRate)
	assert.NotNil(t, report.Outdoors)
}

func TestOccupancy_RejectsInvertedWindow(t *testing.T) {
	_, err := Occupancy(model.MustParseDate("2025-02-01"), model.MustParseDate("2025-01-31"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
