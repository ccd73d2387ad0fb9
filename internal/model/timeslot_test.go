package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots_Catalog(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 18)

	first := slots[0]
	assert.Equal(t, "hour_06", first.ID)
	assert.Equal(t, "06:00", first.StartTime)
	assert.Equal(t, "07:00", first.EndTime)
	assert.Equal(t, "06:00", first.Label)

	last := slots[len(slots)-1]
	assert.Equal(t, "hour_23", last.ID)
	assert.Equal(t, "23:00", last.StartTime)
	assert.Equal(t, "24:00", last.EndTime)
}

func TestTimeSlotByID(t *testing.T) {
	slot, ok := TimeSlotByID("hour_09")
	require.True(t, ok)
	assert.Equal(t, "09:00", slot.StartTime)

	_, ok = TimeSlotByID("hour_05")
	assert.False(t, ok)
}

func TestTimeSlot_Hours(t *testing.T) {
	slot, _ := TimeSlotByID("hour_23")
	assert.Equal(t, 23, slot.StartHour())
	assert.Equal(t, 24, slot.EndHour())
}

func TestTimeSlot_StartOn(t *testing.T) {
	slot, _ := TimeSlotByID("hour_09")
	d := NewDate(2024, time.June, 1)
	assert.Equal(t, time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC), slot.StartOn(d, time.UTC))
}

func TestValidDuration(t *testing.T) {
	for _, d := range []int{1, 2, 3, 4, 6, 8, 12} {
		assert.True(t, ValidDuration(d), "duration %d", d)
	}
	for _, d := range []int{0, 5, 7, 24, -1} {
		assert.False(t, ValidDuration(d), "duration %d", d)
	}
}
