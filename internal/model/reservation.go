package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusOccupied is the only state a stored reservation can be in.
// Cancelling removes the row instead of moving it to another state.
const StatusOccupied = "occupied"

// Reservation books one outdoor for the closed day range
// [StartDate, EndDate]. TotalValue is computed once at creation from the
// outdoor's monthly price and is never recomputed, so later price changes
// do not touch existing bookings.
//
// Fields:
//  ID              – primary key identifier.
//  OutdoorID       – outdoor being booked.
//  StartDate       – first booked day (inclusive).
//  EndDate         – last booked day (inclusive).
//  Status          – always StatusOccupied.
//  CustomerName    – who booked it.
//  CustomerContact – phone or other contact.
//  CustomerEmail   – contact email.
//  Notes           – optional free text.
//  TotalValue      – price charged for the whole range.
type Reservation struct {
	ID              uint64          `db:"id" json:"id"`                             // reservations.id
	OutdoorID       uint64          `db:"outdoor_id" json:"outdoor_id"`             // reservations.outdoor_id
	StartDate       Date            `db:"start_date" json:"start_date"`             // reservations.start_date
	EndDate         Date            `db:"end_date" json:"end_date"`                 // reservations.end_date
	Status          string          `db:"status" json:"status"`                     // reservations.status
	CustomerName    string          `db:"customer_name" json:"customer_name"`       // reservations.customer_name
	CustomerContact string          `db:"customer_contact" json:"customer_contact"` // reservations.customer_contact
	CustomerEmail   string          `db:"customer_email" json:"customer_email"`     // reservations.customer_email
	Notes           *string         `db:"notes" json:"notes"`                       // reservations.notes (nullable)
	TotalValue      decimal.Decimal `db:"total_value" json:"total_value"`           // reservations.total_value
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`             // reservations.created_at
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`             // reservations.updated_at
}

// ReservationDetail is a reservation joined with the outdoor it books, as
// returned by period listings.
type ReservationDetail struct {
	Reservation
	OutdoorName         string          `db:"outdoor_name" json:"outdoor_name"`
	OutdoorLocation     string          `db:"outdoor_location" json:"outdoor_location"`
	OutdoorMonthlyPrice decimal.Decimal `db:"outdoor_monthly_price" json:"outdoor_monthly_price"`
}

// ReservationReceipt is what a successful booking returns: the stored row
// plus the pricing inputs used to compute TotalValue. Days and DailyRate
// are not persisted.
type ReservationReceipt struct {
	Reservation
	Days      int             `json:"days"`
	DailyRate decimal.Decimal `json:"daily_rate"`
}
