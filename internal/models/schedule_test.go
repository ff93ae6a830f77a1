package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleStartAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	s := Schedule{
		Date:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
	}

	start := s.StartAt(loc)
	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.April, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 30, start.Minute())
	assert.Equal(t, loc, start.Location())
}

func TestScheduleStartAtMalformedTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	s := Schedule{
		Date:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "9am",
	}

	// never midnight of the schedule date; that would widen the cancel window
	assert.True(t, s.StartAt(loc).IsZero())
}

func TestScheduleHasFreeSeat(t *testing.T) {
	s := Schedule{Capacity: 2, BookedCount: 1, Active: true}
	assert.True(t, s.HasFreeSeat())

	s.BookedCount = 2
	s.Active = false
	assert.False(t, s.HasFreeSeat())

	// a deactivated slot never accepts seats, whatever the counter says
	s = Schedule{Capacity: 2, BookedCount: 0, Active: false}
	assert.False(t, s.HasFreeSeat())
}
