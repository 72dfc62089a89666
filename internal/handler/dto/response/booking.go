package response

import (
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingItemResponse struct {
	MenuItemID    uuid.UUID `json:"menuItemId"`
	Name          string    `json:"name"`
	Quantity      int32     `json:"quantity"`
	PriceCents    int32     `json:"priceCents"`
	SubtotalCents int32     `json:"subtotalCents"`
}

type BookingResponse struct {
	ID                uuid.UUID             `json:"id"`
	Reference         string                `json:"reference"`
	UserID            uuid.UUID             `json:"userId"`
	UserEmail         string                `json:"userEmail"`
	RestaurantID      uuid.UUID             `json:"restaurantId"`
	RestaurantName    string                `json:"restaurantName"`
	Date              string                `json:"date"`
	Time              string                `json:"time"`
	PartySize         int32                 `json:"partySize"`
	Status            string                `json:"status"`
	DietaryPreference *string               `json:"dietaryPreference,omitempty"`
	SpecialRequest    *string               `json:"specialRequest,omitempty"`
	AdminNote         *string               `json:"adminNote,omitempty"`
	DecidedAt         *time.Time            `json:"decidedAt,omitempty"`
	Items             []BookingItemResponse `json:"items"`
	TotalCents        int32                 `json:"totalCents"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

type BookingListResponse struct {
	ID             uuid.UUID `json:"id"`
	Reference      string    `json:"reference"`
	RestaurantID   uuid.UUID `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	PartySize      int32     `json:"partySize"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}

type GenerateSlotsResponse struct {
	RestaurantID uuid.UUID `json:"restaurantId"`
	SlotCount    int       `json:"slotCount"`
	From         string    `json:"from"`
	Days         int       `json:"days"`
}

// Field names mirror the read models, so conversions are structural copies.
func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingList(rms []*queries.BookingListItem) []*BookingListResponse {
	result := make([]*BookingListResponse, 0, len(rms))
	for _, rm := range rms {
		result = append(result, FromBookingListItem(rm))
	}
	return result
}
