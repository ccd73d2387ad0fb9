// Package queue defines message payloads exchanged over the message broker
// and the background consumer that audits them.
package queue

import "github.com/yedam/studycafe-seat-reservation/internal/model"

// QueueName is the durable queue carrying reservation lifecycle events.
const QueueName = "reservation.events"

// Event types.
const (
	EventCreated   = "created"
	EventEdited    = "edited"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// ReservationEvent is published on every reservation lifecycle change.  It
// carries enough for downstream consumers to log or notify without reading
// the store.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	SeatNumber    int    `json:"seat_number"`
	Date          string `json:"date"`
	TimeSlotID    string `json:"time_slot_id"`
	UserName      string `json:"user_name"`
	Duration      int    `json:"duration_hours"`
	OccurredAt    string `json:"occurred_at"`
}

// EventFor builds an event from a reservation.
func EventFor(eventType string, res model.Reservation, occurredAt string) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		SeatNumber:    res.SeatNumber,
		Date:          res.Date.String(),
		TimeSlotID:    res.TimeSlot.ID,
		UserName:      res.UserName,
		Duration:      res.Duration,
		OccurredAt:    occurredAt,
	}
}
