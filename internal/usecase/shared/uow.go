package shared

import (
	"context"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/timeslot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn inside one transaction with retry on serialization
	// failures; everything fn does commits or rolls back together.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads exposes pool-backed reads for validation outside a transaction.
	Reads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Slots() SlotRepository
	Users() UserRepository
	Reads() CommandReads
	// Atomic runs fn inside a savepoint on the open transaction. When fn
	// fails only its statements roll back; the surrounding transaction
	// stays usable.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type BookingRepository interface {
	// Create inserts the booking row and its line items. A duplicate
	// reference surfaces as a DUPLICATE_KEY repository error.
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatus applies a status change only if the row still holds the
	// expected current status; false means a concurrent transition (or a
	// missing row) won the race.
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (bool, error)
}

type SlotRepository interface {
	// Reserve atomically decrements available seats, failing with a
	// CONFLICT repository error when fewer than seats remain and NOT_FOUND
	// when the slot row was never generated.
	Reserve(ctx context.Context, key timeslot.Key, seats int) error
	// Release atomically returns seats, clamped at the slot's capacity.
	// A clamp indicates a double-release bug and is logged as an anomaly.
	Release(ctx context.Context, key timeslot.Key, seats int) error
	// UpsertAll writes generated slot rows, overwriting capacity for keys
	// that already exist.
	UpsertAll(ctx context.Context, slots []timeslot.Slot) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type CommandReads interface {
	RestaurantByID(ctx context.Context, id uuid.UUID) (*RestaurantSnapshot, error)
	MenuItemsByIDs(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]MenuItemSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}
