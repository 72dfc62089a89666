package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingEvent is the integration payload published after a lifecycle
// change commits. Consumers (notification workers, analytics) subscribe by
// Type; delivery is best-effort and never blocks the booking flow.
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    uuid.UUID `json:"booking_id"`
	Reference    string    `json:"reference"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}
