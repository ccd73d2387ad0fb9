package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeSlot is one of the fixed hour-long booking intervals offered by the
// café.  The catalog is static: eighteen slots covering 06:00 through 24:00.
// Reservations embed a full copy of their slot rather than a reference so a
// stored record stays self-describing.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"` // "06:00"
	EndTime   string `json:"endTime"`   // "07:00"; the last slot ends at "24:00"
	Label     string `json:"label"`
}

const (
	slotFirstHour = 6
	slotLastHour  = 23
)

// TimeSlots returns the fixed slot catalog in start-time order.
func TimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, slotLastHour-slotFirstHour+1)
	for h := slotFirstHour; h <= slotLastHour; h++ {
		start := fmt.Sprintf("%02d:00", h)
		slots = append(slots, TimeSlot{
			ID:        fmt.Sprintf("hour_%02d", h),
			StartTime: start,
			EndTime:   fmt.Sprintf("%02d:00", h+1),
			Label:     start,
		})
	}
	return slots
}

// TimeSlotByID looks up a slot in the catalog.  The second return value is
// false when the id names no known slot.
func TimeSlotByID(id string) (TimeSlot, bool) {
	for _, s := range TimeSlots() {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// DurationOptions are the bookable durations in hours.
func DurationOptions() []int { return []int{1, 2, 3, 4, 6, 8, 12} }

// ValidDuration reports whether d is one of the offered durations.
func ValidDuration(d int) bool {
	for _, opt := range DurationOptions() {
		if d == opt {
			return true
		}
	}
	return false
}

// StartHour returns the slot's starting hour (0-23).
func (s TimeSlot) StartHour() int { return parseHour(s.StartTime) }

// EndHour returns the slot's ending hour.  The last slot reports 24, which
// Date.At resolves to midnight of the following day.
func (s TimeSlot) EndHour() int { return parseHour(s.EndTime) }

// StartOn returns the instant the slot begins on the given date in loc.
func (s TimeSlot) StartOn(d Date, loc *time.Location) time.Time {
	return d.At(s.StartHour(), 0, loc)
}

func parseHour(hhmm string) int {
	h, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	return n
}
