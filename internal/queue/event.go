// Package queue defines the reservation events exchanged over RabbitMQ and
// the publisher and consumer that move them.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/outdoor-rental/internal/model"
)

// Event types carried in ReservationEvent.Type and in the AMQP type header.
const (
    EventReservationCreated   = "reservation.created"
    EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a reservation is committed or
// removed.  It carries enough for downstream consumers to log, notify or
// feed analytics without reading the primary database.
type ReservationEvent struct {
    EventID       string `json:"event_id"`
    Type          string `json:"type"`
    ReservationID uint64 `json:"reservation_id"`
    OutdoorID     uint64 `json:"outdoor_id"`
    OutdoorName   string `json:"outdoor_name,omitempty"`
    StartDate     string `json:"start_date"`
    EndDate       string `json:"end_date"`
    CustomerName  string `json:"customer_name"`
    TotalValue    string `json:"total_value"`
    OccurredAt    string `json:"occurred_at"`
}

// NewReservationEvent snapshots r under a fresh event id.
func NewReservationEvent(eventType string, r model.Reservation, outdoorName string) ReservationEvent {
    return ReservationEvent{
        EventID:       uuid.NewString(),
        Type:          eventType,
        ReservationID: r.ID,
        OutdoorID:     r.OutdoorID,
        OutdoorName:   outdoorName,
        StartDate:     r.StartDate.String(),
        EndDate:       r.EndDate.String(),
        CustomerName:  r.CustomerName,
        TotalValue:    r.TotalValue.StringFixed(2),
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    }
}
