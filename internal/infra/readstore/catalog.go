package readstore

import (
	"context"
	"time"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

const findRestaurantsSQL = `
SELECT id, name, description, timezone, opening_time, closing_time,
       total_seats, is_active, created_at, updated_at
FROM restaurants
WHERE is_active
ORDER BY name`

const findRestaurantByIDSQL = `
SELECT id, name, description, timezone, opening_time, closing_time,
       total_seats, is_active, created_at, updated_at
FROM restaurants
WHERE id = $1`

func (r *CatalogReadStore) FindRestaurants(ctx context.Context) ([]*queries.RestaurantView, error) {
	rows, err := r.db.Query(ctx, findRestaurantsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list restaurants", err)
	}
	defer rows.Close()

	result := make([]*queries.RestaurantView, 0)
	for rows.Next() {
		view, err := scanRestaurant(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read restaurants", err)
	}
	return result, nil
}

func (r *CatalogReadStore) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	row := r.db.QueryRow(ctx, findRestaurantByIDSQL, id)
	view, err := scanRestaurant(row.Scan)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

func scanRestaurant(scan func(dest ...any) error) (*queries.RestaurantView, error) {
	var view queries.RestaurantView
	err := scan(
		&view.ID, &view.Name, &view.Description, &view.Timezone,
		&view.OpeningTime, &view.ClosingTime, &view.TotalSeats,
		&view.IsActive, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan restaurant", err)
	}
	return &view, nil
}

const findMenuItemsSQL = `
SELECT id, restaurant_id, name, description, category, price_cents, is_available
FROM menu_items
WHERE restaurant_id = $1
ORDER BY category, name`

func (r *CatalogReadStore) FindMenuItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*queries.MenuItemView, error) {
	rows, err := r.db.Query(ctx, findMenuItemsSQL, restaurantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list menu items", err)
	}
	defer rows.Close()

	result := make([]*queries.MenuItemView, 0)
	for rows.Next() {
		var view queries.MenuItemView
		err := rows.Scan(
			&view.ID, &view.RestaurantID, &view.Name, &view.Description,
			&view.Category, &view.PriceCents, &view.IsAvailable,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan menu item", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read menu items", err)
	}
	return result, nil
}

const findMenuItemsByIDsSQL = `
SELECT id, restaurant_id, name, description, category, price_cents, is_available
FROM menu_items
WHERE restaurant_id = $1 AND id = ANY($2)`

// FindMenuItemsByIDs scopes the lookup to one restaurant so items from
// another restaurant simply come back missing.
func (r *CatalogReadStore) FindMenuItemsByIDs(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]*queries.MenuItemView, error) {
	rows, err := r.db.Query(ctx, findMenuItemsByIDsSQL, restaurantID, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find menu items by ids", err)
	}
	defer rows.Close()

	result := make([]*queries.MenuItemView, 0, len(ids))
	for rows.Next() {
		var view queries.MenuItemView
		err := rows.Scan(
			&view.ID, &view.RestaurantID, &view.Name, &view.Description,
			&view.Category, &view.PriceCents, &view.IsAvailable,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan menu item", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read menu items", err)
	}
	return result, nil
}

const findDietaryPreferencesSQL = `
SELECT id, name FROM dietary_preferences ORDER BY name`

func (r *CatalogReadStore) FindDietaryPreferences(ctx context.Context) ([]*queries.DietaryPreferenceView, error) {
	rows, err := r.db.Query(ctx, findDietaryPreferencesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dietary preferences", err)
	}
	defer rows.Close()

	result := make([]*queries.DietaryPreferenceView, 0)
	for rows.Next() {
		var view queries.DietaryPreferenceView
		if err := rows.Scan(&view.ID, &view.Name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan dietary preference", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read dietary preferences", err)
	}
	return result, nil
}

const findSlotsSQL = `
SELECT slot_date, slot_time, total_capacity, available_seats, is_open
FROM time_slots
WHERE restaurant_id = $1 AND slot_date = $2
ORDER BY slot_time`

func (r *CatalogReadStore) FindSlots(ctx context.Context, restaurantID uuid.UUID, date string) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx, findSlotsSQL, restaurantID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list time slots", err)
	}
	defer rows.Close()

	result := make([]*queries.SlotView, 0)
	for rows.Next() {
		var view queries.SlotView
		var slotDate time.Time
		err := rows.Scan(&slotDate, &view.Time, &view.TotalCapacity, &view.AvailableSeats, &view.IsOpen)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan time slot", err)
		}
		view.Date = slotDate.Format("2006-01-02")
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read time slots", err)
	}
	return result, nil
}
