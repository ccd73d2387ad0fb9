package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
)

// ReservationRepo provides create, cancel, edit, complete and expiry
// operations over the reservation set, plus the read queries the seat-status
// projection needs.
//
// Every mutation reads the whole collection, transforms it and writes it
// back through the gateway.  The mutex serializes those read-modify-write
// cycles within this process; across processes the store stays
// last-writer-wins.  All wall-clock decisions happen in the café's
// configured location.
type ReservationRepo struct {
	mu  sync.Mutex
	gw  *storage.Gateway
	loc *time.Location
	now func() time.Time
}

// NewReservationRepo returns a repository bound to the given gateway.  loc
// is the café's wall-clock timezone.
func NewReservationRepo(gw *storage.Gateway, loc *time.Location) *ReservationRepo {
	return &ReservationRepo{gw: gw, loc: loc, now: time.Now}
}

// Create appends a new active reservation for the requested triple.  It
// fails with ErrConflict when a different active reservation already holds
// the same (seat, date, slot) triple, and with ErrPastSlot when the slot's
// start has already passed.
func (r *ReservationRepo) Create(ctx context.Context, req model.Request) (model.Reservation, error) {
	req, err := r.validate(req)
	if err != nil {
		return model.Reservation{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.gw.LoadReservations(ctx)
	for _, existing := range all {
		if existing.IsActive() && existing.SameSlot(req) {
			return model.Reservation{}, ErrConflict
		}
	}

	res := model.Reservation{
		ID:         uuid.NewString(),
		SeatNumber: req.SeatNumber,
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
		UserName:   req.UserName,
		Duration:   req.Duration,
		CreatedAt:  r.now().UTC(),
		Status:     model.StatusActive,
	}
	all = append(all, res)
	r.gw.SaveReservations(ctx, all)
	return res, nil
}

// Edit replaces the mutable fields of the reservation with the given id,
// preserving id, createdAt and status.  It fails with ErrNotFound when the
// id is unknown and with ErrConflict when the new triple collides with a
// different active reservation.  The record being edited never collides
// with itself.
func (r *ReservationRepo) Edit(ctx context.Context, id string, req model.Request) (model.Reservation, error) {
	req, err := r.validate(req)
	if err != nil {
		return model.Reservation{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Resolve the target before scanning for collisions: an unknown id is
	// not-found even when the requested triple happens to be taken.
	all := r.gw.LoadReservations(ctx)
	target := -1
	for i, existing := range all {
		if existing.ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		return model.Reservation{}, ErrNotFound
	}
	for i, existing := range all {
		if i == target {
			continue
		}
		if existing.IsActive() && existing.SameSlot(req) {
			return model.Reservation{}, ErrConflict
		}
	}

	res := all[target]
	res.SeatNumber = req.SeatNumber
	res.Date = req.Date
	res.TimeSlot = req.TimeSlot
	res.UserName = req.UserName
	res.Duration = req.Duration
	all[target] = res
	r.gw.SaveReservations(ctx, all)
	return res, nil
}

// Cancel marks the reservation cancelled and returns the record as stored
// after the call.  Unknown ids return ErrNotFound.  Cancelling an already
// cancelled or completed reservation is a no-op success, keeping the
// transition one-directional.
func (r *ReservationRepo) Cancel(ctx context.Context, id string) (model.Reservation, error) {
	return r.transition(ctx, id, model.StatusCancelled)
}

// Complete marks the reservation completed.  The same rules apply as for
// Cancel.
func (r *ReservationRepo) Complete(ctx context.Context, id string) (model.Reservation, error) {
	return r.transition(ctx, id, model.StatusCompleted)
}

func (r *ReservationRepo) transition(ctx context.Context, id string, to model.ReservationStatus) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.gw.LoadReservations(ctx)
	for i, existing := range all {
		if existing.ID != id {
			continue
		}
		if existing.IsActive() {
			all[i].Status = to
			r.gw.SaveReservations(ctx, all)
		}
		return all[i], nil
	}
	return model.Reservation{}, ErrNotFound
}

// ExpireDue flips every active reservation whose end instant (slot start
// plus booked duration) is at or before now to completed.  It persists at
// most once and returns the number of reservations flipped; a second call
// with no elapsed time changes nothing.
func (r *ReservationRepo) ExpireDue(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().In(r.loc)
	all := r.gw.LoadReservations(ctx)
	expired := 0
	for i, existing := range all {
		if !existing.IsActive() {
			continue
		}
		if !now.Before(existing.EndAt(r.loc)) {
			all[i].Status = model.StatusCompleted
			expired++
		}
	}
	if expired > 0 {
		r.gw.SaveReservations(ctx, all)
	}
	return expired
}

// All returns every reservation in insertion order, regardless of status.
func (r *ReservationRepo) All(ctx context.Context) []model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gw.LoadReservations(ctx)
}

// BySeat returns all reservations for the given seat number.
func (r *ReservationRepo) BySeat(ctx context.Context, seatNumber int) []model.Reservation {
	return r.filter(ctx, func(res model.Reservation) bool {
		return res.SeatNumber == seatNumber
	})
}

// ByDate returns all reservations on the given calendar day.
func (r *ReservationRepo) ByDate(ctx context.Context, date model.Date) []model.Reservation {
	return r.filter(ctx, func(res model.Reservation) bool {
		return res.Date.Equal(date)
	})
}

// ActiveBySeatAndDate returns the first active reservation for the seat on
// the given day, in insertion order.  The boolean reports whether one was
// found.
func (r *ReservationRepo) ActiveBySeatAndDate(ctx context.Context, seatNumber int, date model.Date) (model.Reservation, bool) {
	for _, res := range r.All(ctx) {
		if res.IsActive() && res.SeatNumber == seatNumber && res.Date.Equal(date) {
			return res, true
		}
	}
	return model.Reservation{}, false
}

func (r *ReservationRepo) filter(ctx context.Context, keep func(model.Reservation) bool) []model.Reservation {
	out := []model.Reservation{}
	for _, res := range r.All(ctx) {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out
}

// validate applies the static checks shared by Create and Edit: the slot
// must come from the fixed catalog, the duration from the offered options,
// the user name must not be blank, and the slot must not have started
// already on the requested day.  The returned request carries the catalog
// copy of the slot, so a caller-supplied slot whose times disagree with its
// id cannot skew the guard here or the projection later.
func (r *ReservationRepo) validate(req model.Request) (model.Request, error) {
	slot, ok := model.TimeSlotByID(req.TimeSlot.ID)
	if !ok {
		return model.Request{}, fmt.Errorf("%w: unknown time slot %q", ErrInvalidRequest, req.TimeSlot.ID)
	}
	req.TimeSlot = slot
	if !model.ValidDuration(req.Duration) {
		return model.Request{}, fmt.Errorf("%w: duration %d hours is not offered", ErrInvalidRequest, req.Duration)
	}
	if strings.TrimSpace(req.UserName) == "" {
		return model.Request{}, fmt.Errorf("%w: user name is required", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		return model.Request{}, fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}

	now := r.now().In(r.loc)
	today := model.DateOf(now, r.loc)
	if req.Date.Time(r.loc).Before(today.Time(r.loc)) {
		return model.Request{}, ErrPastSlot
	}
	if req.Date.Equal(today) && req.TimeSlot.StartHour() < now.Hour() {
		return model.Request{}, ErrPastSlot
	}
	return req, nil
}
