package shared

import (
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/timeslot"

	"github.com/google/uuid"
)

type RestaurantSnapshot struct {
	ID          uuid.UUID
	Name        string
	Timezone    string
	OpeningTime timeslot.TimeOfDay
	ClosingTime timeslot.TimeOfDay
	TotalSeats  int
	IsActive    bool
}

type MenuItemSnapshot struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	PriceCents   int64
	IsAvailable  bool
}

// BookingSnapshot carries the columns transitions need: the current status
// for the conditional update and the slot key for inventory release.
type BookingSnapshot struct {
	ID           uuid.UUID
	Reference    string
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	Date         timeslot.Date
	Time         timeslot.TimeOfDay
	PartySize    int
	Status       booking.Status
}

func (s *BookingSnapshot) SlotKey() timeslot.Key {
	return timeslot.Key{RestaurantID: s.RestaurantID, Date: s.Date, Time: s.Time}
}

type UpdateStatusParams struct {
	BookingID  uuid.UUID
	FromStatus booking.Status
	ToStatus   booking.Status
	AdminID    *uuid.UUID
	AdminNote  *string
	DecidedAt  *time.Time
}
