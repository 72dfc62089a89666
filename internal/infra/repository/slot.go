package repository

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/timeslot"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

const reserveSeatsSQL = `
UPDATE time_slots
SET available_seats = available_seats - $4, updated_at = now()
WHERE restaurant_id = $1 AND slot_date = $2 AND slot_time = $3
  AND is_open AND available_seats >= $4`

const slotStateSQL = `
SELECT is_open, available_seats
FROM time_slots
WHERE restaurant_id = $1 AND slot_date = $2 AND slot_time = $3`

// Reserve decrements seats in a single conditional statement. There is no
// read-then-write anywhere: under concurrency the row lock plus the
// available_seats guard admit at most capacity seats, and losers are
// classified by a follow-up read.
func (r *SlotRepository) Reserve(ctx context.Context, key timeslot.Key, seats int) error {
	tag, err := r.db.Exec(ctx, reserveSeatsSQL,
		key.RestaurantID, key.Date.ToTime(), key.Time.String(), seats,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve seats", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var isOpen bool
	var available int
	err = r.db.QueryRow(ctx, slotStateSQL,
		key.RestaurantID, key.Date.ToTime(), key.Time.String(),
	).Scan(&isOpen, &available)
	if err != nil {
		return infra.WrapRepoErr("time slot not found", err, infra.KindNotFound)
	}
	if !isOpen {
		return infra.NewRepoErr(infra.KindUnavailable, "time slot closed")
	}
	return infra.NewRepoErr(infra.KindConflict, "insufficient seats available")
}

const releaseSeatsSQL = `
UPDATE time_slots AS t
SET available_seats = LEAST(t.available_seats + $4, t.total_capacity), updated_at = now()
FROM time_slots AS prev
WHERE t.restaurant_id = $1 AND t.slot_date = $2 AND t.slot_time = $3
  AND prev.restaurant_id = t.restaurant_id
  AND prev.slot_date = t.slot_date
  AND prev.slot_time = t.slot_time
RETURNING prev.available_seats, t.available_seats, t.total_capacity`

// Release returns seats, clamped at capacity. The lifecycle table guarantees
// at most one release per booking, so hitting the clamp means a bug; it is
// logged loudly instead of corrupting the counter.
func (r *SlotRepository) Release(ctx context.Context, key timeslot.Key, seats int) error {
	var before, after, capacity int
	err := r.db.QueryRow(ctx, releaseSeatsSQL,
		key.RestaurantID, key.Date.ToTime(), key.Time.String(), seats,
	).Scan(&before, &after, &capacity)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("time slot not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to release seats", err)
	}

	if after-before != seats {
		slog.Error("seat release clamped at capacity, possible double release",
			"restaurant_id", key.RestaurantID,
			"slot_date", key.Date.String(),
			"slot_time", key.Time.String(),
			"seats", seats,
			"before", before,
			"after", after,
			"capacity", capacity,
		)
	}
	return nil
}

const upsertSlotSQL = `
INSERT INTO time_slots (
    restaurant_id, slot_date, slot_time, total_capacity, available_seats, is_open
) VALUES ($1, $2, $3, $4, $4, $5)
ON CONFLICT (restaurant_id, slot_date, slot_time) DO UPDATE
SET total_capacity = EXCLUDED.total_capacity,
    available_seats = GREATEST(0, EXCLUDED.total_capacity
        - (time_slots.total_capacity - time_slots.available_seats)),
    is_open = EXCLUDED.is_open,
    updated_at = now()`

// UpsertAll writes generated slots. On conflict the capacity is refreshed
// while already-booked seats are preserved: available becomes the new
// capacity minus seats currently held by bookings, floored at zero.
func (r *SlotRepository) UpsertAll(ctx context.Context, slots []timeslot.Slot) error {
	for _, slot := range slots {
		_, err := r.db.Exec(ctx, upsertSlotSQL,
			slot.Key.RestaurantID,
			slot.Key.Date.ToTime(),
			slot.Key.Time.String(),
			slot.TotalCapacity,
			slot.IsOpen,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to upsert time slot", err)
		}
	}
	return nil
}
