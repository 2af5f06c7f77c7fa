package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

func iv(start, end string) Interval {
	return Interval{Start: model.MustParseDate(start), End: model.MustParseDate(end)}
}

func TestNewInterval(t *testing.T) {
	_, err := NewInterval(model.MustParseDate("2025-03-10"), model.MustParseDate("2025-03-01"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	_, err = NewInterval(model.Date{}, model.MustParseDate("2025-03-01"))
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	got, err := NewInterval(model.MustParseDate("2025-03-01"), model.MustParseDate("2025-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Days())
}

func TestOverlaps(t *testing.T) {
	base := iv("2025-03-01", "2025-03-10")
	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", iv("2025-03-01", "2025-03-10"), true},
		{"contained", iv("2025-03-03", "2025-03-04"), true},
		{"containing", iv("2025-02-01", "2025-04-01"), true},
		{"partial left", iv("2025-02-20", "2025-03-01"), true},
		{"partial right", iv("2025-03-10", "2025-03-20"), true},
		{"straddles start", iv("2025-02-25", "2025-03-05"), true},
		{"just before", iv("2025-02-20", "2025-02-28"), false},
		{"just after", iv("2025-03-11", "2025-03-15"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.other.Overlaps(base), base.Overlaps(tt.other), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_Properties(t *testing.T) {
	start := model.MustParseDate("2025-01-01")
	var all []Interval
	for s := 0; s < 12; s++ {
		for l := 0; l < 6; l++ {
			all = append(all, Interval{Start: start.AddDays(s), End: start.AddDays(s + l)})
		}
	}
	for _, a := range all {
		assert.True(t, a.Overlaps(a), "reflexive: %v", a)
		for _, b := range all {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
			if a.End.Before(b.Start) {
				assert.False(t, a.Overlaps(b), "disjoint %v %v", a, b)
			}
		}
	}
}

func TestDaysAndClip(t *testing.T) {
	assert.Equal(t, 10, iv("2025-03-01", "2025-03-10").Days())
	assert.Equal(t, 29, iv("2024-02-01", "2024-02-29").Days())

	window := iv("2025-03-05", "2025-03-31")
	assert.Equal(t, 6, iv("2025-03-01", "2025-03-10").ClippedDays(window))
	assert.Equal(t, 27, iv("2025-01-01", "2025-12-31").ClippedDays(window))
	assert.Equal(t, 0, iv("2025-04-01", "2025-04-10").ClippedDays(window))

	c, ok := iv("2025-03-25", "2025-04-10").Clip(window)
	require.True(t, ok)
	assert.Equal(t, "2025-03-25", c.Start.String())
	assert.Equal(t, "2025-03-31", c.End.String())
}

func TestEach_StopsEarly(t *testing.T) {
	var seen []string
	iv("2025-03-01", "2025-03-10").Each(func(d model.Date) bool {
		seen = append(seen, d.String())
		return len(seen) < 3
	})
	assert.Equal(t, []string{"2025-03-01", "2025-03-02", "2025-03-03"}, seen)
}

func TestConflicts(t *testing.T) {
	rs := []model.Reservation{
		{ID: 1, StartDate: model.MustParseDate("2025-03-01"), EndDate: model.MustParseDate("2025-03-10")},
		{ID: 2, StartDate: model.MustParseDate("2025-03-20"), EndDate: model.MustParseDate("2025-03-25")},
	}
	got := Conflicts(iv("2025-03-05", "2025-03-15"), rs)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Empty(t, Conflicts(iv("2025-03-11", "2025-03-19"), rs))
}
