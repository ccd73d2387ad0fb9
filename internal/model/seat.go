package model

import "time"

// SeatStatus is the display status of a seat.  Available, reserved and
// occupied are derived from the reservation set by the status projector;
// maintenance is set manually by an operator and is never derived.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatReserved    SeatStatus = "reserved"
	SeatOccupied    SeatStatus = "occupied"
	SeatMaintenance SeatStatus = "maintenance"
)

// SeatType is the cosmetic zone tag a seat belongs to.  The zones map to
// colored blocks on the floor plan.
type SeatType string

const (
	ZonePink      SeatType = "pink"
	ZoneLightBlue SeatType = "light-blue"
	ZoneWhite     SeatType = "white"
	ZoneGreen     SeatType = "green"
	ZoneYellow    SeatType = "yellow"
	ZoneLime      SeatType = "lime"
)

// SeatTypes lists every zone tag, for per-zone statistics.
func SeatTypes() []SeatType {
	return []SeatType{ZonePink, ZoneLightBlue, ZoneWhite, ZoneGreen, ZoneYellow, ZoneLime}
}

// Seat is one physical seat in the café.
//
// ID is the stable internal key; Number is what is printed on the seat and
// what reservations reference.  The two differ in one block where the seats
// are intentionally numbered in reverse.  Status is derived at read time and
// never persisted.
type Seat struct {
	ID        int        `json:"id"`
	Number    int        `json:"number"`
	Type      SeatType   `json:"type"`
	Status    SeatStatus `json:"status"`
	HasOutlet bool       `json:"hasOutlet,omitempty"`
	IsWindow  bool       `json:"isWindow,omitempty"`
	IsQuiet   bool       `json:"isQuiet,omitempty"`
	IsGroup   bool       `json:"isGroup,omitempty"`
}

// FeatureOverride is an operator correction to a seat's amenity flags,
// persisted separately from the static catalog and keyed by seat id.  Nil
// fields leave the catalog value untouched; non-nil fields win.
type FeatureOverride struct {
	HasOutlet *bool     `json:"hasOutlet,omitempty"`
	IsWindow  *bool     `json:"isWindow,omitempty"`
	IsQuiet   *bool     `json:"isQuiet,omitempty"`
	IsGroup   *bool     `json:"isGroup,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Apply merges the override onto a seat and returns the result.
func (o FeatureOverride) Apply(s Seat) Seat {
	if o.HasOutlet != nil {
		s.HasOutlet = *o.HasOutlet
	}
	if o.IsWindow != nil {
		s.IsWindow = *o.IsWindow
	}
	if o.IsQuiet != nil {
		s.IsQuiet = *o.IsQuiet
	}
	if o.IsGroup != nil {
		s.IsGroup = *o.IsGroup
	}
	return s
}
