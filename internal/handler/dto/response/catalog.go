package response

import (
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RestaurantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Timezone    string    `json:"timezone"`
	OpeningTime string    `json:"openingTime"`
	ClosingTime string    `json:"closingTime"`
	TotalSeats  int32     `json:"totalSeats"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MenuItemResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `json:"category"`
	PriceCents   int32     `json:"priceCents"`
	IsAvailable  bool      `json:"isAvailable"`
}

type DietaryPreferenceResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SlotResponse struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	TotalCapacity  int32  `json:"totalCapacity"`
	AvailableSeats int32  `json:"availableSeats"`
	IsOpen         bool   `json:"isOpen"`
}

func FromRestaurantView(rm *queries.RestaurantView) *RestaurantResponse {
	var resp RestaurantResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromRestaurantList(rms []*queries.RestaurantView) []*RestaurantResponse {
	result := make([]*RestaurantResponse, 0, len(rms))
	for _, rm := range rms {
		result = append(result, FromRestaurantView(rm))
	}
	return result
}

func FromMenuItemList(rms []*queries.MenuItemView) []*MenuItemResponse {
	result := make([]*MenuItemResponse, 0, len(rms))
	for _, rm := range rms {
		var resp MenuItemResponse
		_ = copier.Copy(&resp, rm)
		result = append(result, &resp)
	}
	return result
}

func FromDietaryPreferenceList(rms []*queries.DietaryPreferenceView) []*DietaryPreferenceResponse {
	result := make([]*DietaryPreferenceResponse, 0, len(rms))
	for _, rm := range rms {
		result = append(result, &DietaryPreferenceResponse{ID: rm.ID, Name: rm.Name})
	}
	return result
}

func FromSlotList(rms []*queries.SlotView) []*SlotResponse {
	result := make([]*SlotResponse, 0, len(rms))
	for _, rm := range rms {
		var resp SlotResponse
		_ = copier.Copy(&resp, rm)
		result = append(result, &resp)
	}
	return result
}
