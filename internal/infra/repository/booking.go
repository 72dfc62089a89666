package repository

import (
	"context"

	"tablebook/internal/domain/booking"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/shared"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const insertBookingSQL = `
INSERT INTO bookings (
    id, reference, user_id, restaurant_id, slot_date, slot_time,
    party_size, dietary_preference_id, special_request, status,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const insertBookingItemSQL = `
INSERT INTO booking_items (booking_id, menu_item_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	var specialRequest *string
	if !b.SpecialRequest().IsEmpty() {
		s := b.SpecialRequest().String()
		specialRequest = &s
	}

	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.Reference().String(),
		b.UserID(),
		b.RestaurantID(),
		b.Date().ToTime(),
		b.Time().String(),
		b.PartySize().Value(),
		b.DietaryPreferenceID(),
		specialRequest,
		b.Status().String(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("booking reference already exists", err, infra.KindDuplicateKey)
		}
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("booking references missing row", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	for _, item := range b.Items() {
		_, err := r.db.Exec(ctx, insertBookingItemSQL,
			b.ID(),
			item.MenuItemID(),
			item.Quantity(),
			item.PriceCents(),
		)
		if err != nil {
			if pgconv.IsForeignKeyViolation(err) {
				return infra.WrapRepoErr("booking item references missing menu item", err, infra.KindForeignKeyViolated)
			}
			return infra.WrapRepoErr("failed to create booking item", err)
		}
	}

	return nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $3,
    admin_id = COALESCE($4, admin_id),
    admin_note = COALESCE($5, admin_note),
    decided_at = COALESCE($6, decided_at),
    updated_at = now()
WHERE id = $1 AND status = $2`

// UpdateStatus is the guarded transition write: the WHERE clause on the
// current status makes concurrent transitions race safely, with exactly one
// winner.
func (r *BookingRepository) UpdateStatus(ctx context.Context, params shared.UpdateStatusParams) (bool, error) {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL,
		params.BookingID,
		params.FromStatus.String(),
		params.ToStatus.String(),
		params.AdminID,
		params.AdminNote,
		params.DecidedAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}
