package model

import "time"

const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// Reservation is the Booking side of one saga run. request_id is the
// client-stable idempotency key; at most one reservation exists per key.
type Reservation struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	RequestID     string    `json:"request_id" bson:"request_id"`
	UserID        string    `json:"user_id" bson:"user_id"`
	RoomID        string    `json:"room_id" bson:"room_id"`
	StartDate     Date      `json:"start_date" bson:"start_date"`
	EndDate       Date      `json:"end_date" bson:"end_date"`
	Status        string    `json:"status" bson:"status"`
	CorrelationID string    `json:"correlation_id" bson:"correlation_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Terminal reports whether the reservation can no longer transition.
func (r *Reservation) Terminal() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationCancelled
}
