package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// ReservationsTopic carries booking changes so table planning can follow them.
	ReservationsTopic = "frontdesk.reservations"

	EventReservationBooked    = "reservation.booked"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent captures the minimal booking data other services need.
type ReservationEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	ReservationID int64     `json:"reservation_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	DateTime      time.Time `json:"date_time,omitempty"`
	PartySize     int       `json:"party_size,omitempty"`
}

func NewReservationEvent(eventType string, reservationID int64, at time.Time) ReservationEvent {
	return ReservationEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    at,
		ReservationID: reservationID,
	}
}
