package service

import (
	"context"
	"encoding/json"
	"time"

	"bookd/pkg/kafka"
	"bookd/pkg/model"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"

	eventSource = "booking"
)

// EventPublisher is satisfied by *kafka.Producer. A nil publisher disables
// event emission entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// ReservationEvent announces a saga's terminal outcome to downstream
// consumers (notifications, analytics).
type ReservationEvent struct {
	EventType     string     `json:"event_type"`
	ReservationID string     `json:"reservation_id"`
	RequestID     string     `json:"request_id"`
	UserID        string     `json:"user_id"`
	RoomID        string     `json:"room_id"`
	StartDate     model.Date `json:"start_date"`
	EndDate       model.Date `json:"end_date"`
	Status        string     `json:"status"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (s *reservationService) publishOutcome(ctx context.Context, reservation *model.Reservation) {
	if s.events == nil {
		return
	}

	eventType := EventReservationCancelled
	if reservation.Status == model.ReservationConfirmed {
		eventType = EventReservationConfirmed
	}

	payload, err := json.Marshal(ReservationEvent{
		EventType:     eventType,
		ReservationID: reservation.ID,
		RequestID:     reservation.RequestID,
		UserID:        reservation.UserID,
		RoomID:        reservation.RoomID,
		StartDate:     reservation.StartDate,
		EndDate:       reservation.EndDate,
		Status:        reservation.Status,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.cfg.Log.Error("Failed to encode reservation event", "request_id", reservation.RequestID, "error", err)
		return
	}

	msg := kafka.NewMessage(reservation.RequestID, payload, eventType, reservation.CorrelationID, eventSource)
	if err := s.events.Publish(ctx, msg); err != nil {
		// Events are best-effort; the reservation row is the source of
		// truth.
		s.cfg.Log.Warn("Failed to publish reservation event",
			"request_id", reservation.RequestID,
			"event_type", eventType,
			"error", err,
		)
	}
}
