package booking

import (
	"errors"
	"time"

	"tablebook/internal/domain/timeslot"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("line item quantity must be positive")

// LineItem is a pre-ordered menu item with its price frozen at booking time.
// Later menu price changes never affect an existing booking.
type LineItem struct {
	menuItemID uuid.UUID
	quantity   int
	priceCents int
}

func NewLineItem(menuItemID uuid.UUID, quantity, priceCents int) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{menuItemID: menuItemID, quantity: quantity, priceCents: priceCents}, nil
}

func (li LineItem) MenuItemID() uuid.UUID { return li.menuItemID }
func (li LineItem) Quantity() int         { return li.quantity }
func (li LineItem) PriceCents() int       { return li.priceCents }

type Booking struct {
	id                  uuid.UUID
	reference           Reference
	userID              uuid.UUID
	restaurantID        uuid.UUID
	date                timeslot.Date
	time                timeslot.TimeOfDay
	partySize           PartySize
	dietaryPreferenceID *uuid.UUID
	specialRequest      Note
	status              Status
	adminID             *uuid.UUID
	adminNote           Note
	decidedAt           *time.Time
	items               []LineItem
	createdAt           time.Time
	updatedAt           time.Time
}

func newBooking(
	reference Reference,
	userID, restaurantID uuid.UUID,
	date timeslot.Date,
	tod timeslot.TimeOfDay,
	partySize PartySize,
	dietaryPreferenceID *uuid.UUID,
	specialRequest Note,
	items []LineItem,
	now time.Time,
) *Booking {
	return &Booking{
		id:                  uuid.New(),
		reference:           reference,
		userID:              userID,
		restaurantID:        restaurantID,
		date:                date,
		time:                tod,
		partySize:           partySize,
		dietaryPreferenceID: dietaryPreferenceID,
		specialRequest:      specialRequest,
		status:              StatusPending,
		items:               items,
		createdAt:           now,
		updatedAt:           now,
	}
}

func ReconstructBooking(
	id uuid.UUID,
	reference Reference,
	userID, restaurantID uuid.UUID,
	date timeslot.Date,
	tod timeslot.TimeOfDay,
	partySize PartySize,
	dietaryPreferenceID *uuid.UUID,
	specialRequest Note,
	status Status,
	adminID *uuid.UUID,
	adminNote Note,
	decidedAt *time.Time,
	items []LineItem,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                  id,
		reference:           reference,
		userID:              userID,
		restaurantID:        restaurantID,
		date:                date,
		time:                tod,
		partySize:           partySize,
		dietaryPreferenceID: dietaryPreferenceID,
		specialRequest:      specialRequest,
		status:              status,
		adminID:             adminID,
		adminNote:           adminNote,
		decidedAt:           decidedAt,
		items:               items,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// RegenerateReference replaces the reference after an insert collision.
func (b *Booking) RegenerateReference(now time.Time) {
	b.reference = NewReference(now)
}

func (b *Booking) SlotKey() timeslot.Key {
	return timeslot.Key{RestaurantID: b.restaurantID, Date: b.date, Time: b.time}
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) Reference() Reference            { return b.reference }
func (b *Booking) UserID() uuid.UUID               { return b.userID }
func (b *Booking) RestaurantID() uuid.UUID         { return b.restaurantID }
func (b *Booking) Date() timeslot.Date             { return b.date }
func (b *Booking) Time() timeslot.TimeOfDay        { return b.time }
func (b *Booking) PartySize() PartySize            { return b.partySize }
func (b *Booking) DietaryPreferenceID() *uuid.UUID { return b.dietaryPreferenceID }
func (b *Booking) SpecialRequest() Note            { return b.specialRequest }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) AdminID() *uuid.UUID             { return b.adminID }
func (b *Booking) AdminNote() Note                 { return b.adminNote }
func (b *Booking) DecidedAt() *time.Time           { return b.decidedAt }
func (b *Booking) Items() []LineItem               { return b.items }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }
