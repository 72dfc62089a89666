//go:build unit

package timeslot_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/timeslot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	key := timeslot.Key{
		RestaurantID: uuid.New(),
		Date:         timeslot.NewDate(2026, time.September, 3),
		Time:         mustTime(t, 19, 0),
	}

	slot, err := timeslot.NewSlot(key, 40)
	require.NoError(t, err)
	assert.Equal(t, key, slot.Key)
	assert.Equal(t, 40, slot.TotalCapacity)
	assert.Equal(t, 40, slot.AvailableSeats)
	assert.True(t, slot.IsOpen)

	_, err = timeslot.NewSlot(key, 0)
	assert.ErrorIs(t, err, timeslot.ErrInvalidCapacity)
}

func TestGenerationPlanBuild(t *testing.T) {
	restaurantID := uuid.New()
	from := timeslot.NewDate(2026, time.September, 1)

	basePlan := func() timeslot.GenerationPlan {
		return timeslot.GenerationPlan{
			RestaurantID: restaurantID,
			From:         from,
			Days:         7,
			Opening:      mustTime(t, 11, 0),
			Closing:      mustTime(t, 14, 0),
			IntervalMin:  30,
			Capacity:     40,
		}
	}

	t.Run("covers every day of the horizon inclusive", func(t *testing.T) {
		slots, err := basePlan().Build()
		require.NoError(t, err)

		// 6 times per day (11:00..13:30), 8 days (today through today+7).
		assert.Len(t, slots, 6*8)

		dates := map[string]int{}
		for _, s := range slots {
			dates[s.Key.Date.String()]++
			assert.Equal(t, restaurantID, s.Key.RestaurantID)
			assert.Equal(t, 40, s.TotalCapacity)
			assert.Equal(t, 40, s.AvailableSeats)
			assert.True(t, s.IsOpen)
		}
		assert.Len(t, dates, 8)
		assert.Contains(t, dates, "2026-09-01")
		assert.Contains(t, dates, "2026-09-08")
		assert.NotContains(t, dates, "2026-09-09")
	})

	t.Run("opening inclusive, closing exclusive", func(t *testing.T) {
		plan := basePlan()
		plan.Days = 0
		slots, err := plan.Build()
		require.NoError(t, err)

		times := make([]string, 0, len(slots))
		for _, s := range slots {
			times = append(times, s.Key.Time.String())
		}
		assert.Equal(t, []string{"11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}, times)
	})

	t.Run("interval that does not divide the span stops before closing", func(t *testing.T) {
		plan := basePlan()
		plan.Days = 0
		plan.IntervalMin = 45
		slots, err := plan.Build()
		require.NoError(t, err)

		times := make([]string, 0, len(slots))
		for _, s := range slots {
			times = append(times, s.Key.Time.String())
		}
		assert.Equal(t, []string{"11:00", "11:45", "12:30", "13:15"}, times)
	})

	t.Run("invalid plans", func(t *testing.T) {
		plan := basePlan()
		plan.Capacity = 0
		_, err := plan.Build()
		assert.ErrorIs(t, err, timeslot.ErrInvalidCapacity)

		plan = basePlan()
		plan.IntervalMin = 0
		_, err = plan.Build()
		assert.ErrorIs(t, err, timeslot.ErrInvalidInterval)

		plan = basePlan()
		plan.Opening = mustTime(t, 14, 0)
		plan.Closing = mustTime(t, 11, 0)
		_, err = plan.Build()
		assert.ErrorIs(t, err, timeslot.ErrInvalidHours)

		plan = basePlan()
		plan.Closing = plan.Opening
		_, err = plan.Build()
		assert.ErrorIs(t, err, timeslot.ErrInvalidHours)
	})
}

func mustTime(t *testing.T, hour, minute int) timeslot.TimeOfDay {
	t.Helper()
	tod, err := timeslot.NewTimeOfDay(hour, minute)
	require.NoError(t, err)
	return tod
}
