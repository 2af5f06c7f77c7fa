package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		monthly string
		days    int
		want    string
	}{
		{"ten days at 3000", "3000", 10, "1000"},
		{"full month", "4500", 30, "4500"},
		{"single day", "3000", 1, "100"},
		{"free board", "0", 12, "0"},
		{"two months", "7000", 60, "14000"},
		{"three days at 1000", "1000", 3, "100"},
		{"month at 100", "100", 30, "100"},
		{"cents survive", "1234.56", 7, "288.064"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(decimal.RequireFromString(tt.monthly), tt.days)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPrice_ThirtyTimesPriceIsMonthlyTimesDays(t *testing.T) {
	thirty := decimal.NewFromInt(30)
	tolerance := decimal.New(1, -12)
	for _, monthly := range []string{"5000", "8000", "3500", "1234.56", "100"} {
		m := decimal.RequireFromString(monthly)
		for days := 1; days <= 62; days++ {
			want := m.Mul(decimal.NewFromInt(int64(days)))
			got := Price(m, days).Mul(thirty)
			assert.True(t, got.Sub(want).Abs().LessThan(tolerance), "monthly=%s days=%d got %s want %s", monthly, days, got, want)
			if days%30 == 0 {
				assert.True(t, Price(m, days).Equal(m.Mul(decimal.NewFromInt(int64(days/30)))), "whole months are exact: monthly=%s days=%d", monthly, days)
			}
		}
	}
}

func TestDailyRate(t *testing.T) {
	assert.Equal(t, "100", DailyRate(decimal.NewFromInt(3000)).String())
	assert.Equal(t, "166.67", DailyRate(decimal.NewFromInt(5000)).StringFixed(2))
}
