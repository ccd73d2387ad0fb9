package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yedam/studycafe-seat-reservation/internal/catalog"
	"github.com/yedam/studycafe-seat-reservation/internal/model"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
)

// SeatRepo serves the seat catalog with persisted feature overrides merged
// on top, and tracks the operator's manual maintenance toggles.
//
// Maintenance flags live only in memory for the life of the process; feature
// overrides are persisted through the gateway.
type SeatRepo struct {
	mu          sync.RWMutex
	gw          *storage.Gateway
	maintenance map[int]bool // by seat id
	now         func() time.Time
}

// NewSeatRepo returns a repository bound to the given gateway.
func NewSeatRepo(gw *storage.Gateway) *SeatRepo {
	return &SeatRepo{gw: gw, maintenance: make(map[int]bool), now: time.Now}
}

// Seats returns the full catalog with overrides applied and maintenance
// flags reflected in the status field.  Overrides win over catalog values;
// everything else reports available, to be refined by the projector.
func (s *SeatRepo) Seats(ctx context.Context) []model.Seat {
	overrides := s.gw.LoadFeatureOverrides(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	seats := catalog.Seats()
	for i, seat := range seats {
		if o, ok := overrides[seat.ID]; ok {
			seats[i] = o.Apply(seat)
		}
		if s.maintenance[seat.ID] {
			seats[i].Status = model.SeatMaintenance
		}
	}
	return seats
}

// SetFeatures merges the given override onto whatever is already stored for
// the seat and persists the result with a fresh updatedAt.  Unknown seat
// ids return ErrNotFound.
func (s *SeatRepo) SetFeatures(ctx context.Context, seatID int, o model.FeatureOverride) (model.Seat, error) {
	seat, ok := seatByID(seatID)
	if !ok {
		return model.Seat{}, fmt.Errorf("seat %d: %w", seatID, ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := s.gw.LoadFeatureOverrides(ctx)
	merged := overrides[seatID]
	if o.HasOutlet != nil {
		merged.HasOutlet = o.HasOutlet
	}
	if o.IsWindow != nil {
		merged.IsWindow = o.IsWindow
	}
	if o.IsQuiet != nil {
		merged.IsQuiet = o.IsQuiet
	}
	if o.IsGroup != nil {
		merged.IsGroup = o.IsGroup
	}
	merged.UpdatedAt = s.now().UTC()
	overrides[seatID] = merged
	s.gw.SaveFeatureOverrides(ctx, overrides)

	return merged.Apply(seat), nil
}

// SetStatus toggles a seat between available and maintenance.  Reserved and
// occupied are derived statuses and cannot be set manually.
func (s *SeatRepo) SetStatus(seatID int, status model.SeatStatus) error {
	if _, ok := seatByID(seatID); !ok {
		return fmt.Errorf("seat %d: %w", seatID, ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch status {
	case model.SeatMaintenance:
		s.maintenance[seatID] = true
	case model.SeatAvailable:
		delete(s.maintenance, seatID)
	default:
		return fmt.Errorf("%w: status %q cannot be set manually", ErrInvalidRequest, status)
	}
	return nil
}

// InMaintenance reports whether the operator flagged the seat.
func (s *SeatRepo) InMaintenance(seatID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maintenance[seatID]
}

func seatByID(id int) (model.Seat, bool) {
	for _, seat := range catalog.Seats() {
		if seat.ID == id {
			return seat, true
		}
	}
	return model.Seat{}, false
}
