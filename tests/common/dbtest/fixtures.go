//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", precomputed so fixtures stay fast.
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) WHERE is_active = true DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

func CreateTestRestaurant(t *testing.T, db DBLike, name string, totalSeats int) uuid.UUID {
	t.Helper()

	restaurantID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO restaurants (id, name, timezone, opening_time, closing_time, total_seats, is_active)
		 VALUES ($1, $2, 'America/New_York', '11:00', '22:00', $3, true)`,
		restaurantID, name, totalSeats)
	require.NoError(t, err)

	return restaurantID
}

func CreateTestMenuItem(t *testing.T, db DBLike, restaurantID uuid.UUID, name string, priceCents int64, available bool) uuid.UUID {
	t.Helper()

	itemID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO menu_items (id, restaurant_id, name, category, price_cents, is_available)
		 VALUES ($1, $2, $3, 'main', $4, $5)`,
		itemID, restaurantID, name, priceCents, available)
	require.NoError(t, err)

	return itemID
}

func CreateTestSlot(t *testing.T, db DBLike, restaurantID uuid.UUID, date time.Time, slotTime string, capacity int) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		`INSERT INTO time_slots (restaurant_id, slot_date, slot_time, total_capacity, available_seats, is_open)
		 VALUES ($1, $2, $3, $4, $4, true)
		 ON CONFLICT (restaurant_id, slot_date, slot_time) DO UPDATE
		 SET total_capacity = EXCLUDED.total_capacity, available_seats = EXCLUDED.available_seats`,
		restaurantID, date, slotTime, capacity)
	require.NoError(t, err)
}

func CloseTestSlot(t *testing.T, db DBLike, restaurantID uuid.UUID, date time.Time, slotTime string) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"UPDATE time_slots SET is_open = false WHERE restaurant_id = $1 AND slot_date = $2 AND slot_time = $3",
		restaurantID, date, slotTime)
	require.NoError(t, err)
}

func GetAvailableSeats(t *testing.T, db DBLike, restaurantID uuid.UUID, date time.Time, slotTime string) int {
	t.Helper()

	var seats int
	err := db.QueryRow(context.Background(),
		"SELECT available_seats FROM time_slots WHERE restaurant_id = $1 AND slot_date = $2 AND slot_time = $3",
		restaurantID, date, slotTime).Scan(&seats)
	require.NoError(t, err)
	return seats
}

func GetDietaryPreferenceID(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT id FROM dietary_preferences WHERE name = $1", name).Scan(&id)
	require.NoError(t, err)
	return id
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO dietary_preferences (id, name) VALUES
		    (gen_random_uuid(), 'Vegetarian'),
		    (gen_random_uuid(), 'Vegan'),
		    (gen_random_uuid(), 'Gluten-Free'),
		    (gen_random_uuid(), 'Halal')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
