// Package pricing turns an outdoor's monthly rate into the price of a
// booking. A month is always 30 days regardless of the calendar.
package pricing

import "github.com/shopspring/decimal"

// DaysPerMonth is the fixed divisor applied to monthly rates.
const DaysPerMonth = 30

var daysPerMonth = decimal.NewFromInt(DaysPerMonth)

// DailyRate returns monthlyRate / 30. It is informational only; totals come
// from Price.
func DailyRate(monthlyRate decimal.Decimal) decimal.Decimal {
	return monthlyRate.Div(daysPerMonth)
}

// Price returns (monthlyRate / 30) * days. The product is taken before the
// single division so whole results stay whole. Nothing is rounded here;
// callers round for presentation and the store keeps two decimals.
func Price(monthlyRate decimal.Decimal, days int) decimal.Decimal {
	return monthlyRate.Mul(decimal.NewFromInt(int64(days))).Div(daysPerMonth)
}
