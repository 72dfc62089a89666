//go:build unit

package commands_test

import (
	"context"
	"testing"

	"tablebook/internal/domain/timeslot"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotFixture struct {
	uow   *fakeUoW
	slots *fakeSlotRepo
	reads *fakeReads
	uc    commands.SlotCommands
}

func newSlotFixture(t *testing.T) *slotFixture {
	t.Helper()

	opening, err := timeslot.NewTimeOfDay(11, 0)
	require.NoError(t, err)
	closing, err := timeslot.NewTimeOfDay(14, 0)
	require.NoError(t, err)

	slots := &fakeSlotRepo{}
	reads := &fakeReads{
		restaurant: &shared.RestaurantSnapshot{
			ID:          uuid.New(),
			Name:        "Test Bistro",
			Timezone:    "UTC",
			OpeningTime: opening,
			ClosingTime: closing,
			TotalSeats:  40,
			IsActive:    true,
		},
	}
	tx := &fakeTx{bookings: &fakeBookingRepo{}, slots: slots, reads: reads}
	uow := &fakeUoW{tx: tx}

	cfg := config.BookingConfig{WindowDays: 7, SlotIntervalMin: 30}
	uc := commands.NewSlotUseCase(uow, cfg, clock.NewMockClock(testNow))

	return &slotFixture{uow: uow, slots: slots, reads: reads, uc: uc}
}

func TestGenerateSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("generates the full horizon from the restaurant's opening hours", func(t *testing.T) {
		f := newSlotFixture(t)

		result, err := f.uc.GenerateSlots(ctx, reqdto.GenerateSlotsRequest{RestaurantID: f.reads.restaurant.ID})
		require.NoError(t, err)

		// 6 slots per day (11:00..13:30 at 30min), 8 days inclusive.
		assert.Equal(t, 6*8, result.SlotCount)
		assert.Equal(t, "2026-09-01", result.From)
		assert.Equal(t, 7, result.Days)

		require.Len(t, f.slots.upserted, 1)
		require.Len(t, f.slots.upserted[0], 6*8)
		first := f.slots.upserted[0][0]
		assert.Equal(t, f.reads.restaurant.ID, first.Key.RestaurantID)
		assert.Equal(t, 40, first.TotalCapacity)
		assert.Equal(t, 40, first.AvailableSeats)
	})

	t.Run("days and capacity overrides", func(t *testing.T) {
		f := newSlotFixture(t)

		days := 1
		capacity := 12
		result, err := f.uc.GenerateSlots(ctx, reqdto.GenerateSlotsRequest{
			RestaurantID: f.reads.restaurant.ID,
			Days:         &days,
			Capacity:     &capacity,
		})
		require.NoError(t, err)

		assert.Equal(t, 6*2, result.SlotCount)
		assert.Equal(t, 12, f.slots.upserted[0][0].TotalCapacity)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		f := newSlotFixture(t)
		f.reads.restaurantErr = infra.NewRepoErr(infra.KindNotFound, "no restaurant")

		_, err := f.uc.GenerateSlots(ctx, reqdto.GenerateSlotsRequest{RestaurantID: uuid.New()})
		assert.ErrorIs(t, err, commands.ErrRestaurantNotFound)
	})

	t.Run("missing restaurant id", func(t *testing.T) {
		f := newSlotFixture(t)

		_, err := f.uc.GenerateSlots(ctx, reqdto.GenerateSlotsRequest{})
		assert.ErrorIs(t, err, commands.ErrInvalidGenerationPlan)
		assert.Zero(t, f.uow.withinCalls)
	})

	t.Run("inverted opening hours are an invalid plan", func(t *testing.T) {
		f := newSlotFixture(t)
		f.reads.restaurant.OpeningTime, f.reads.restaurant.ClosingTime =
			f.reads.restaurant.ClosingTime, f.reads.restaurant.OpeningTime

		_, err := f.uc.GenerateSlots(ctx, reqdto.GenerateSlotsRequest{RestaurantID: f.reads.restaurant.ID})
		assert.ErrorIs(t, err, commands.ErrInvalidGenerationPlan)
	})
}
