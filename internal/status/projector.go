// Package status derives each seat's display status from the static catalog,
// the active reservation set, the operator-selected viewing date and the
// current wall-clock time.  The projection is pure: it never mutates the
// reservation set and must simply be re-run when any input advances.
package status

import (
	"context"
	"math"
	"time"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
)

// Projector computes seat display statuses for a viewing date.
type Projector struct {
	reservations *repository.ReservationRepo
	seats        *repository.SeatRepo
	loc          *time.Location
	now          func() time.Time
}

// NewProjector wires the projector to its inputs.  loc is the café's
// wall-clock timezone.
func NewProjector(reservations *repository.ReservationRepo, seats *repository.SeatRepo, loc *time.Location) *Projector {
	return &Projector{reservations: reservations, seats: seats, loc: loc, now: time.Now}
}

// Project determines the display status for one seat on the viewing date.
// Maintenance wins outright: it is set manually and never derived.  With an
// active reservation, the seat is occupied while now lies inside
// [start, start+duration) and reserved otherwise; with none it is available.
func (p *Projector) Project(seat model.Seat, res model.Reservation, found bool) model.SeatStatus {
	if seat.Status == model.SeatMaintenance {
		return model.SeatMaintenance
	}
	if !found {
		return model.SeatAvailable
	}
	now := p.now().In(p.loc)
	start := res.StartAt(p.loc)
	end := res.EndAt(p.loc)
	if !now.Before(start) && now.Before(end) {
		return model.SeatOccupied
	}
	return model.SeatReserved
}

// SeatMap returns the full catalog with projected statuses for the viewing
// date.
func (p *Projector) SeatMap(ctx context.Context, viewing model.Date) []model.Seat {
	seats := p.seats.Seats(ctx)
	for i, seat := range seats {
		res, found := p.reservations.ActiveBySeatAndDate(ctx, seat.Number, viewing)
		seats[i].Status = p.Project(seat, res, found)
	}
	return seats
}

// Stats summarizes seat statuses across the whole café.
type Stats struct {
	Total           int `json:"total"`
	Available       int `json:"available"`
	Occupied        int `json:"occupied"`
	Reserved        int `json:"reserved"`
	Maintenance     int `json:"maintenance"`
	UtilizationRate int `json:"utilizationRate"` // percent, occupied+reserved over total
}

// ZoneStats summarizes statuses within one zone.
type ZoneStats struct {
	Zone        model.SeatType `json:"zone"`
	Total       int            `json:"total"`
	Available   int            `json:"available"`
	Occupied    int            `json:"occupied"`
	Reserved    int            `json:"reserved"`
	Maintenance int            `json:"maintenance"`
}

// FacilityStats counts seats per amenity, with overrides applied.
type FacilityStats struct {
	WithOutlet  int `json:"withOutlet"`
	WindowSeats int `json:"windowSeats"`
	QuietZone   int `json:"quietZone"`
	GroupStudy  int `json:"groupStudy"`
}

// Summarize computes the overall stats for a projected seat map.
func Summarize(seats []model.Seat) Stats {
	s := Stats{Total: len(seats)}
	for _, seat := range seats {
		switch seat.Status {
		case model.SeatAvailable:
			s.Available++
		case model.SeatOccupied:
			s.Occupied++
		case model.SeatReserved:
			s.Reserved++
		case model.SeatMaintenance:
			s.Maintenance++
		}
	}
	if s.Total > 0 {
		s.UtilizationRate = int(math.Round(float64(s.Occupied+s.Reserved) / float64(s.Total) * 100))
	}
	return s
}

// SummarizeZones computes per-zone breakdowns, skipping zones with no seats.
func SummarizeZones(seats []model.Seat) []ZoneStats {
	out := []ZoneStats{}
	for _, zone := range model.SeatTypes() {
		z := ZoneStats{Zone: zone}
		for _, seat := range seats {
			if seat.Type != zone {
				continue
			}
			z.Total++
			switch seat.Status {
			case model.SeatAvailable:
				z.Available++
			case model.SeatOccupied:
				z.Occupied++
			case model.SeatReserved:
				z.Reserved++
			case model.SeatMaintenance:
				z.Maintenance++
			}
		}
		if z.Total > 0 {
			out = append(out, z)
		}
	}
	return out
}

// SummarizeFacilities counts amenity flags across the seat map.
func SummarizeFacilities(seats []model.Seat) FacilityStats {
	var f FacilityStats
	for _, seat := range seats {
		if seat.HasOutlet {
			f.WithOutlet++
		}
		if seat.IsWindow {
			f.WindowSeats++
		}
		if seat.IsQuiet {
			f.QuietZone++
		}
		if seat.IsGroup {
			f.GroupStudy++
		}
	}
	return f
}
