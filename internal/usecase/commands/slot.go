package commands

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/domain/timeslot"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidGenerationPlan = errs.New("invalid slot generation plan")
	ErrSlotGenerationFailed  = errs.New("slot generation failed")
)

type GenerateSlotsResult struct {
	RestaurantID uuid.UUID
	SlotCount    int
	From         string
	Days         int
}

type SlotCommands interface {
	// GenerateSlots materializes capacity rows for the restaurant's booking
	// horizon. Existing keys are overwritten with the new capacity, so
	// re-running after a capacity change is safe.
	GenerateSlots(ctx context.Context, req reqdto.GenerateSlotsRequest) (*GenerateSlotsResult, error)
}

type slotUseCaseImpl struct {
	uow   shared.UnitOfWork
	cfg   config.BookingConfig
	clock clock.Clock
}

func NewSlotUseCase(uow shared.UnitOfWork, cfg config.BookingConfig, clock clock.Clock) SlotCommands {
	return &slotUseCaseImpl{uow: uow, cfg: cfg, clock: clock}
}

func (u *slotUseCaseImpl) GenerateSlots(ctx context.Context, req reqdto.GenerateSlotsRequest) (*GenerateSlotsResult, error) {
	data, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidGenerationPlan)
	}

	restaurant, err := u.uow.Reads().RestaurantByID(ctx, data.RestaurantID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	loc, err := time.LoadLocation(restaurant.Timezone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidGenerationPlan)
	}

	days := u.cfg.WindowDays
	if data.Days != nil {
		days = *data.Days
	}
	capacity := restaurant.TotalSeats
	if data.Capacity != nil {
		capacity = *data.Capacity
	}

	plan := timeslot.GenerationPlan{
		RestaurantID: restaurant.ID,
		From:         timeslot.DateOf(u.clock.Now().In(loc)),
		Days:         days,
		Opening:      restaurant.OpeningTime,
		Closing:      restaurant.ClosingTime,
		IntervalMin:  u.cfg.SlotIntervalMin,
		Capacity:     capacity,
	}

	slots, err := plan.Build()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidGenerationPlan)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().UpsertAll(ctx, slots)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrSlotGenerationFailed)
	}

	slog.Info("generated time slots",
		"restaurant_id", restaurant.ID,
		"slots", len(slots),
		"days", days,
	)

	return &GenerateSlotsResult{
		RestaurantID: restaurant.ID,
		SlotCount:    len(slots),
		From:         plan.From.String(),
		Days:         days,
	}, nil
}
