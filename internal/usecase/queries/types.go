package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingItemView struct {
	MenuItemID    uuid.UUID `json:"menu_item_id"`
	Name          string    `json:"name"`
	Quantity      int32     `json:"quantity"`
	PriceCents    int32     `json:"price_cents"`
	SubtotalCents int32     `json:"subtotal_cents"`
}

type BookingView struct {
	ID                uuid.UUID         `json:"id"`
	Reference         string            `json:"reference"`
	UserID            uuid.UUID         `json:"user_id"`
	UserEmail         string            `json:"user_email"`
	RestaurantID      uuid.UUID         `json:"restaurant_id"`
	RestaurantName    string            `json:"restaurant_name"`
	Date              string            `json:"date"`
	Time              string            `json:"time"`
	PartySize         int32             `json:"party_size"`
	Status            string            `json:"status"`
	DietaryPreference *string           `json:"dietary_preference,omitempty"`
	SpecialRequest    *string           `json:"special_request,omitempty"`
	AdminNote         *string           `json:"admin_note,omitempty"`
	DecidedAt         *time.Time        `json:"decided_at,omitempty"`
	Items             []BookingItemView `json:"items"`
	TotalCents        int32             `json:"total_cents"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	Reference      string    `json:"reference"`
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	PartySize      int32     `json:"party_size"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type RestaurantView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Timezone    string    `json:"timezone"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	TotalSeats  int32     `json:"total_seats"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MenuItemView struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `json:"category"`
	PriceCents   int32     `json:"price_cents"`
	IsAvailable  bool      `json:"is_available"`
}

type DietaryPreferenceView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SlotView struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	TotalCapacity  int32  `json:"total_capacity"`
	AvailableSeats int32  `json:"available_seats"`
	IsOpen         bool   `json:"is_open"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type UserView struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Name         string     `json:"name"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	PasswordHash string     `json:"-"`
}
