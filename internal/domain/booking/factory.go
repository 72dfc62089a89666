package booking

import (
	"errors"
	"time"

	"tablebook/internal/domain/timeslot"
	"tablebook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrDateInPast      = errors.New("booking date is in the past")
	ErrDateOutOfWindow = errors.New("booking date is beyond the booking window")
	ErrUnknownTimezone = errors.New("unknown restaurant timezone")
)

// RestaurantSpec is the slice of the catalog the factory needs: identity and
// the local calendar the booking window is evaluated in.
type RestaurantSpec struct {
	ID       uuid.UUID
	Timezone string
}

type Factory struct {
	clock clock.Clock
	// windowDays is the inclusive horizon: today .. today+windowDays.
	windowDays   int
	maxPartySize int
}

func NewFactory(clk clock.Clock, windowDays, maxPartySize int) *Factory {
	return &Factory{
		clock:        clk,
		windowDays:   windowDays,
		maxPartySize: maxPartySize,
	}
}

// CreateBooking validates the request against the booking window and builds a
// pending booking with a fresh reference. Seat availability is deliberately
// not checked here: only the conditional reserve at commit time is
// authoritative under concurrency.
func (f *Factory) CreateBooking(
	restaurant RestaurantSpec,
	userID uuid.UUID,
	date timeslot.Date,
	tod timeslot.TimeOfDay,
	partySize int,
	dietaryPreferenceID *uuid.UUID,
	specialRequest string,
	items []LineItem,
) (*Booking, error) {
	size, err := NewPartySize(partySize, f.maxPartySize)
	if err != nil {
		return nil, err
	}

	note, err := NewNote(specialRequest)
	if err != nil {
		return nil, err
	}

	now := f.clock.Now()
	if err := f.validateWindow(restaurant.Timezone, date, now); err != nil {
		return nil, err
	}

	return newBooking(
		NewReference(now),
		userID,
		restaurant.ID,
		date,
		tod,
		size,
		dietaryPreferenceID,
		note,
		items,
		now,
	), nil
}

// validateWindow compares calendar days in the restaurant's local timezone,
// not an absolute hour span: a booking for tomorrow made at 23:59 is one day
// out regardless of how few hours remain.
func (f *Factory) validateWindow(tz string, date timeslot.Date, now time.Time) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return ErrUnknownTimezone
	}

	today := timeslot.DateOf(now.In(loc))
	if date.Before(today) {
		return ErrDateInPast
	}
	if date.After(today.AddDays(f.windowDays)) {
		return ErrDateOutOfWindow
	}
	return nil
}
