package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  Transitions
// are one-directional: active reservations become completed or cancelled and
// nothing resurrects them.
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation records a booking of one seat for one time slot on one
// calendar day.  SeatNumber references Seat.Number, not Seat.ID.  The slot
// is an embedded copy, not a reference.  Records are never physically
// deleted; cancelled and completed reservations stay in the store.
type Reservation struct {
	ID         string            `json:"id"`
	SeatNumber int               `json:"seatNumber"`
	Date       Date              `json:"date"`
	TimeSlot   TimeSlot          `json:"timeSlot"`
	UserName   string            `json:"userName"`
	Duration   int               `json:"duration"` // hours
	CreatedAt  time.Time         `json:"createdAt"`
	Status     ReservationStatus `json:"status"`
}

// Request carries the mutable fields of a reservation for create and edit
// operations.
type Request struct {
	SeatNumber int      `json:"seatNumber"`
	Date       Date     `json:"date"`
	TimeSlot   TimeSlot `json:"timeSlot"`
	UserName   string   `json:"userName"`
	Duration   int      `json:"duration"`
}

// IsActive reports whether the reservation still blocks its slot.
func (r Reservation) IsActive() bool { return r.Status == StatusActive }

// StartAt returns the instant the booking begins in loc.
func (r Reservation) StartAt(loc *time.Location) time.Time {
	return r.TimeSlot.StartOn(r.Date, loc)
}

// EndAt returns the instant the booking ends: slot start plus the booked
// duration.  A long duration rolls past midnight onto the next calendar day
// while the record keeps its original date.
func (r Reservation) EndAt(loc *time.Location) time.Time {
	return r.StartAt(loc).Add(time.Duration(r.Duration) * time.Hour)
}

// SameSlot reports whether the request targets the same (seat, date, slot)
// triple as the reservation.  This is the collision key for double-booking
// checks.
func (r Reservation) SameSlot(req Request) bool {
	return r.SeatNumber == req.SeatNumber &&
		r.Date.Equal(req.Date) &&
		r.TimeSlot.ID == req.TimeSlot.ID
}
