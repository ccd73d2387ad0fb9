package status

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
)

func newTestProjector(t *testing.T) (*Projector, *repository.ReservationRepo, *repository.SeatRepo) {
	t.Helper()
	gw := storage.NewGateway(storage.NewMemoryStore(), zerolog.Nop())
	reservations := repository.NewReservationRepo(gw, time.UTC)
	seats := repository.NewSeatRepo(gw)
	return NewProjector(reservations, seats, time.UTC), reservations, seats
}

func at(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2030, time.June, 1, hour, 0, 0, 0, time.UTC)
	}
}

func book(t *testing.T, repo *repository.ReservationRepo, seat int, slotID string, duration int) model.Reservation {
	t.Helper()
	s, ok := model.TimeSlotByID(slotID)
	require.True(t, ok)
	res, err := repo.Create(context.Background(), model.Request{
		SeatNumber: seat,
		Date:       model.NewDate(2030, time.June, 1),
		TimeSlot:   s,
		UserName:   "Mina",
		Duration:   duration,
	})
	require.NoError(t, err)
	return res
}

func TestProject_OccupiedInsideWindow(t *testing.T) {
	p, repo, _ := newTestProjector(t)
	res := book(t, repo, 14, "hour_09", 2)
	seat := model.Seat{ID: 14, Number: 14, Status: model.SeatAvailable}

	// Occupied for [09:00, 11:00), reserved on either side.
	p.now = at(9)
	assert.Equal(t, model.SeatOccupied, p.Project(seat, res, true))
	p.now = at(10)
	assert.Equal(t, model.SeatOccupied, p.Project(seat, res, true))
	p.now = at(8)
	assert.Equal(t, model.SeatReserved, p.Project(seat, res, true))
	p.now = at(11)
	assert.Equal(t, model.SeatReserved, p.Project(seat, res, true))
}

func TestProject_AvailableWithoutReservation(t *testing.T) {
	p, _, _ := newTestProjector(t)
	p.now = at(10)
	seat := model.Seat{ID: 14, Number: 14, Status: model.SeatAvailable}
	assert.Equal(t, model.SeatAvailable, p.Project(seat, model.Reservation{}, false))
}

func TestProject_MaintenanceWins(t *testing.T) {
	p, repo, _ := newTestProjector(t)
	res := book(t, repo, 14, "hour_09", 2)
	seat := model.Seat{ID: 14, Number: 14, Status: model.SeatMaintenance}

	p.now = at(10)
	assert.Equal(t, model.SeatMaintenance, p.Project(seat, res, true))
}

func TestSeatMap(t *testing.T) {
	p, repo, seats := newTestProjector(t)
	book(t, repo, 14, "hour_09", 2)
	book(t, repo, 15, "hour_13", 1)
	require.NoError(t, seats.SetStatus(3, model.SeatMaintenance))

	p.now = at(10)
	projected := p.SeatMap(context.Background(), model.NewDate(2030, time.June, 1))
	require.Len(t, projected, 56)

	byNumber := map[int]model.Seat{}
	for _, s := range projected {
		byNumber[s.Number] = s
	}
	assert.Equal(t, model.SeatOccupied, byNumber[14].Status)
	assert.Equal(t, model.SeatReserved, byNumber[15].Status)
	assert.Equal(t, model.SeatMaintenance, byNumber[3].Status)
	assert.Equal(t, model.SeatAvailable, byNumber[1].Status)

	// A different viewing date ignores today's bookings.
	projected = p.SeatMap(context.Background(), model.NewDate(2030, time.June, 2))
	for _, s := range projected {
		byNumber[s.Number] = s
	}
	assert.Equal(t, model.SeatAvailable, byNumber[14].Status)
	assert.Equal(t, model.SeatMaintenance, byNumber[3].Status)
}

func TestSummarize(t *testing.T) {
	seats := []model.Seat{
		{Status: model.SeatOccupied},
		{Status: model.SeatReserved},
		{Status: model.SeatAvailable},
		{Status: model.SeatAvailable},
		{Status: model.SeatMaintenance},
	}
	s := Summarize(seats)
	assert.Equal(t, Stats{
		Total:           5,
		Available:       2,
		Occupied:        1,
		Reserved:        1,
		Maintenance:     1,
		UtilizationRate: 40,
	}, s)

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestSummarizeZones(t *testing.T) {
	seats := []model.Seat{
		{Type: model.ZonePink, Status: model.SeatOccupied},
		{Type: model.ZonePink, Status: model.SeatAvailable},
		{Type: model.ZoneGreen, Status: model.SeatReserved},
	}
	zones := SummarizeZones(seats)
	require.Len(t, zones, 2)

	byZone := map[model.SeatType]ZoneStats{}
	for _, z := range zones {
		byZone[z.Zone] = z
	}
	assert.Equal(t, 2, byZone[model.ZonePink].Total)
	assert.Equal(t, 1, byZone[model.ZonePink].Occupied)
	assert.Equal(t, 1, byZone[model.ZoneGreen].Reserved)
}

func TestSummarizeFacilities(t *testing.T) {
	seats := []model.Seat{
		{HasOutlet: true, IsWindow: true},
		{HasOutlet: true, IsQuiet: true},
		{IsGroup: true},
	}
	f := SummarizeFacilities(seats)
	assert.Equal(t, FacilityStats{WithOutlet: 2, WindowSeats: 1, QuietZone: 1, GroupStudy: 1}, f)
}
