package request

import (
	"errors"
	"strings"

	"tablebook/internal/domain/timeslot"

	"github.com/google/uuid"
)

var ErrMissingRestaurantID = errors.New("restaurant id is required")

type BookingItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	RestaurantID        uuid.UUID            `json:"restaurant_id" binding:"required"`
	Date                string               `json:"date" binding:"required"`
	Time                string               `json:"time" binding:"required"`
	PartySize           int                  `json:"party_size" binding:"required,min=1"`
	DietaryPreferenceID *uuid.UUID           `json:"dietary_preference_id,omitempty"`
	SpecialRequest      *string              `json:"special_request,omitempty"`
	Items               []BookingItemRequest `json:"items,omitempty" binding:"omitempty,dive"`
}

// BookingItemData is a parsed line-item request.
type BookingItemData struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// CreateBookingData is the request with its wire formats parsed into domain
// value types.
type CreateBookingData struct {
	RestaurantID        uuid.UUID
	Date                timeslot.Date
	Time                timeslot.TimeOfDay
	PartySize           int
	DietaryPreferenceID *uuid.UUID
	SpecialRequest      string
	Items               []BookingItemData
}

func (r CreateBookingRequest) ToDomain() (*CreateBookingData, error) {
	date, err := timeslot.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	tod, err := timeslot.ParseTimeOfDay(r.Time)
	if err != nil {
		return nil, err
	}

	specialRequest := ""
	if r.SpecialRequest != nil {
		specialRequest = strings.TrimSpace(*r.SpecialRequest)
	}

	items := make([]BookingItemData, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, BookingItemData{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	return &CreateBookingData{
		RestaurantID:        r.RestaurantID,
		Date:                date,
		Time:                tod,
		PartySize:           r.PartySize,
		DietaryPreferenceID: r.DietaryPreferenceID,
		SpecialRequest:      specialRequest,
		Items:               items,
	}, nil
}

type DecideBookingRequest struct {
	Note *string `json:"note,omitempty"`
}

func (r DecideBookingRequest) GetNote() string {
	if r.Note == nil {
		return ""
	}
	return strings.TrimSpace(*r.Note)
}

type GenerateSlotsRequest struct {
	Days     *int `json:"days,omitempty" binding:"omitempty,min=0,max=90"`
	Capacity *int `json:"capacity,omitempty" binding:"omitempty,min=1"`

	// RestaurantID comes from the URL path, not the body.
	RestaurantID uuid.UUID `json:"-"`
}

type GenerateSlotsData struct {
	RestaurantID uuid.UUID
	Days         *int
	Capacity     *int
}

func (r GenerateSlotsRequest) ToDomain() (*GenerateSlotsData, error) {
	if r.RestaurantID == uuid.Nil {
		return nil, ErrMissingRestaurantID
	}
	return &GenerateSlotsData{
		RestaurantID: r.RestaurantID,
		Days:         r.Days,
		Capacity:     r.Capacity,
	}, nil
}
