package readstore

import (
	"context"
	"fmt"
	"time"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDSQL = `
SELECT b.id, b.reference, b.user_id, u.email, b.restaurant_id, r.name,
       b.slot_date, b.slot_time, b.party_size, b.status,
       dp.name, b.special_request, b.admin_note, b.decided_at,
       b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN restaurants r ON r.id = b.restaurant_id
LEFT JOIN dietary_preferences dp ON dp.id = b.dietary_preference_id
WHERE b.id = $1`

const findBookingItemsSQL = `
SELECT bi.menu_item_id, m.name, bi.quantity, bi.price_cents
FROM booking_items bi
JOIN menu_items m ON m.id = bi.menu_item_id
WHERE bi.booking_id = $1
ORDER BY m.name`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	var slotDate time.Time

	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID, &view.Reference, &view.UserID, &view.UserEmail,
		&view.RestaurantID, &view.RestaurantName,
		&slotDate, &view.Time, &view.PartySize, &view.Status,
		&view.DietaryPreference, &view.SpecialRequest, &view.AdminNote,
		&view.DecidedAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	view.Date = slotDate.Format("2006-01-02")

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items
	for _, item := range items {
		view.TotalCents += item.SubtotalCents
	}

	return &view, nil
}

func (r *BookingReadStore) findItems(ctx context.Context, bookingID uuid.UUID) ([]queries.BookingItemView, error) {
	rows, err := r.db.Query(ctx, findBookingItemsSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking items", err)
	}
	defer rows.Close()

	items := make([]queries.BookingItemView, 0)
	for rows.Next() {
		var item queries.BookingItemView
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking item", err)
		}
		item.SubtotalCents = item.PriceCents * item.Quantity
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking items", err)
	}
	return items, nil
}

const listBookingsByUserSQL = `
SELECT b.id, b.reference, b.restaurant_id, r.name,
       b.slot_date, b.slot_time, b.party_size, b.status, b.created_at
FROM bookings b
JOIN restaurants r ON r.id = b.restaurant_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC
LIMIT $2 OFFSET $3`

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return scanBookingList(rows)
}

func (r *BookingReadStore) FindAll(ctx context.Context, filter queries.BookingFilter, limit, offset int32) ([]*queries.BookingListItem, error) {
	sql := `
SELECT b.id, b.reference, b.restaurant_id, r.name,
       b.slot_date, b.slot_time, b.party_size, b.status, b.created_at
FROM bookings b
JOIN restaurants r ON r.id = b.restaurant_id
WHERE 1=1`
	args := make([]any, 0, 5)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		sql += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filter.RestaurantID != nil {
		args = append(args, *filter.RestaurantID)
		sql += fmt.Sprintf(" AND b.restaurant_id = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		sql += fmt.Sprintf(" AND b.slot_date = $%d", len(args))
	}

	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY b.slot_date, b.slot_time, b.created_at LIMIT $%d", len(args))
	args = append(args, offset)
	sql += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return scanBookingList(rows)
}

const countBookingsByStatusSQL = `
SELECT COUNT(*) FROM bookings WHERE status = $1`

func (r *BookingReadStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countBookingsByStatusSQL, status).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings by status", err)
	}
	return count, nil
}

type bookingListRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookingList(rows bookingListRows) ([]*queries.BookingListItem, error) {
	result := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		var slotDate time.Time
		err := rows.Scan(
			&item.ID, &item.Reference, &item.RestaurantID, &item.RestaurantName,
			&slotDate, &item.Time, &item.PartySize, &item.Status, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.Date = slotDate.Format("2006-01-02")
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}
	return result, nil
}
