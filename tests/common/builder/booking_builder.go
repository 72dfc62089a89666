//go:build unit || e2e

package builder

import (
	"time"

	dombooking "tablebook/internal/domain/booking"
	"tablebook/internal/domain/timeslot"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID         uuid.UUID
	UserEmail      string
	RestaurantID   uuid.UUID
	RestaurantName string
	Date           string
	Time           string
	PartySize      int
	DietaryPrefID  *uuid.UUID
	SpecialRequest string
	Status         dombooking.Status
	Items          []reqdto.BookingItemRequest
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		UserID:         uuid.New(),
		UserEmail:      "diner@example.com",
		RestaurantID:   uuid.New(),
		RestaurantName: "Test Bistro",
		Date:           now.AddDate(0, 0, 1).Format("2006-01-02"),
		Time:           "19:00",
		PartySize:      4,
		SpecialRequest: "Window table, please",
		Status:         dombooking.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	specialRequest := b.SpecialRequest
	return reqdto.CreateBookingRequest{
		RestaurantID:        b.RestaurantID,
		Date:                b.Date,
		Time:                b.Time,
		PartySize:           b.PartySize,
		DietaryPreferenceID: b.DietaryPrefID,
		SpecialRequest:      &specialRequest,
		Items:               b.Items,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	id := uuid.New()
	specialRequest := b.SpecialRequest
	return &queries.BookingView{
		ID:             id,
		Reference:      "BK1ABC2DEF3XYZW",
		UserID:         b.UserID,
		UserEmail:      b.UserEmail,
		RestaurantID:   b.RestaurantID,
		RestaurantName: b.RestaurantName,
		Date:           b.Date,
		Time:           b.Time,
		PartySize:      int32(b.PartySize),
		Status:         b.Status.String(),
		SpecialRequest: &specialRequest,
		Items:          []queries.BookingItemView{},
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:             uuid.New(),
		Reference:      "BK1ABC2DEF3XYZW",
		RestaurantID:   b.RestaurantID,
		RestaurantName: b.RestaurantName,
		Date:           b.Date,
		Time:           b.Time,
		PartySize:      int32(b.PartySize),
		Status:         b.Status.String(),
		CreatedAt:      b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	date, _ := timeslot.ParseDate(b.Date)
	tod, _ := timeslot.ParseTimeOfDay(b.Time)
	return &shared.BookingSnapshot{
		ID:           uuid.New(),
		Reference:    "BK1ABC2DEF3XYZW",
		UserID:       b.UserID,
		RestaurantID: b.RestaurantID,
		Date:         date,
		Time:         tod,
		PartySize:    b.PartySize,
		Status:       b.Status,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithRestaurantID(restaurantID uuid.UUID) *BookingBuilder {
	b.RestaurantID = restaurantID
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithTime(t string) *BookingBuilder {
	b.Time = t
	return b
}

func (b *BookingBuilder) WithPartySize(size int) *BookingBuilder {
	b.PartySize = size
	return b
}

func (b *BookingBuilder) WithDietaryPreference(id uuid.UUID) *BookingBuilder {
	b.DietaryPrefID = &id
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithItems(items ...reqdto.BookingItemRequest) *BookingBuilder {
	b.Items = items
	return b
}

func (b *BookingBuilder) WithSpecialRequest(request string) *BookingBuilder {
	b.SpecialRequest = request
	return b
}
