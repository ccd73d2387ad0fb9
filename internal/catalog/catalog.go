// Package catalog holds the static seat map of the café.  The list is fixed:
// changing the floor plan means editing this file.  Seat statuses default to
// available; feature flags start unset and are corrected through persisted
// overrides.
package catalog

import "github.com/yedam/studycafe-seat-reservation/internal/model"

// Title and Subtitle label the seat map in the dashboard header.
const (
	Title    = "Yedam Study Cafe"
	Subtitle = "Live seat availability"
)

// block describes a run of seats sharing one zone.  Numbers normally equal
// ids; the reversed flag covers the one block whose printed numbers run
// backwards relative to the internal ids.
type block struct {
	firstID, lastID int
	zone            model.SeatType
	reversed        bool
}

var blocks = []block{
	{1, 5, model.ZoneLightBlue, false},    // bottom row
	{6, 13, model.ZoneGreen, false},       // left column
	{14, 21, model.ZonePink, false},       // top-left row
	{22, 26, model.ZoneLightBlue, false},  // top-right row
	{27, 35, model.ZoneWhite, false},      // far right column
	{36, 40, model.ZoneYellow, true},      // bottom-right row, numbered 40..36
	{41, 56, model.ZoneLightBlue, false},  // upper-middle blocks
}

// Seats returns a fresh copy of the 56-seat catalog.  Callers may mutate the
// returned slice freely.
func Seats() []model.Seat {
	seats := make([]model.Seat, 0, 56)
	for _, b := range blocks {
		for id := b.firstID; id <= b.lastID; id++ {
			number := id
			if b.reversed {
				number = b.lastID + b.firstID - id
			}
			seats = append(seats, model.Seat{
				ID:     id,
				Number: number,
				Type:   b.zone,
				Status: model.SeatAvailable,
			})
		}
	}
	return seats
}

// SeatByNumber finds the catalog seat with the given printed number.
func SeatByNumber(number int) (model.Seat, bool) {
	for _, s := range Seats() {
		if s.Number == number {
			return s, true
		}
	}
	return model.Seat{}, false
}
