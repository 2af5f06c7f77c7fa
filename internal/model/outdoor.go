package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outdoor represents a billboard available for rental as stored in the
// `outdoors` table. MonthlyPrice is the basis of every reservation's
// price; inactive outdoors stay in the registry but are left out of the
// public catalog and of occupancy reports.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Location     – free text address or landmark.
//  Dimensions   – free text size, e.g. "9x3m".
//  MonthlyPrice – rental price for a 30 day month, never negative.
//  PhotoURL     – optional picture of the board.
//  Description  – optional notes shown in the catalog.
//  Active       – whether the outdoor is offered.
type Outdoor struct {
	ID           uint64          `db:"id" json:"id"`                       // outdoors.id
	Name         string          `db:"name" json:"name"`                   // outdoors.name
	Location     string          `db:"location" json:"location"`           // outdoors.location
	Dimensions   string          `db:"dimensions" json:"dimensions"`       // outdoors.dimensions
	MonthlyPrice decimal.Decimal `db:"monthly_price" json:"monthly_price"` // outdoors.monthly_price
	PhotoURL     *string         `db:"photo_url" json:"photo_url"`         // outdoors.photo_url (nullable)
	Description  *string         `db:"description" json:"description"`     // outdoors.description (nullable)
	Active       bool            `db:"active" json:"active"`               // outdoors.active
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`       // outdoors.created_at
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`       // outdoors.updated_at
}

// OutdoorFilter narrows registry listings. A nil Active lists everything.
type OutdoorFilter struct {
	Active *bool
}
