package commands

import (
	"context"
	"errors"
	"log/slog"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/user"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRestaurantNotFound      = errs.New("restaurant not found")
	ErrRestaurantInactive      = errs.New("restaurant not accepting bookings")
	ErrSlotNotFound            = errs.New("time slot not found")
	ErrSlotClosed              = errs.New("time slot closed")
	ErrInsufficientCapacity    = errs.New("insufficient seats available")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrMenuItemNotFound        = errs.New("menu item not found")
	ErrMenuItemUnavailable     = errs.New("menu item unavailable")
	ErrBookingAccessDenied     = errs.New("booking access denied")
	ErrBookingDateOutOfWindow  = errs.New("booking date outside allowed window")
	ErrInvalidStatusTransition = errs.New("invalid status transition")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	ApproveBooking(ctx context.Context, bookingID, adminID uuid.UUID, note string) error
	RejectBooking(ctx context.Context, bookingID, adminID uuid.UUID, note string) error
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role) error
	CompleteBooking(ctx context.Context, bookingID, adminID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingFactory *booking.Factory
	bookingQueries queries.BookingQueries
	events         EventPublisher
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingFactory *booking.Factory,
	bookingQueries queries.BookingQueries,
	events EventPublisher,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingFactory: bookingFactory,
		bookingQueries: bookingQueries,
		events:         events,
		clock:          clock,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	data, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	restaurant, err := u.validateRestaurant(ctx, data.RestaurantID)
	if err != nil {
		return nil, err
	}

	items, err := u.buildLineItems(ctx, data.RestaurantID, data.Items)
	if err != nil {
		return nil, err
	}

	entity, err := u.bookingFactory.CreateBooking(
		booking.RestaurantSpec{ID: restaurant.ID, Timezone: restaurant.Timezone},
		userID,
		data.Date,
		data.Time,
		data.PartySize,
		data.DietaryPreferenceID,
		data.SpecialRequest,
		items,
	)
	if err != nil {
		if errors.Is(err, booking.ErrDateInPast) || errors.Is(err, booking.ErrDateOutOfWindow) {
			return nil, errs.Mark(err, ErrBookingDateOutOfWindow)
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if reserveErr := tx.Slots().Reserve(ctx, entity.SlotKey(), entity.PartySize().Value()); reserveErr != nil {
			return u.mapReserveError(reserveErr)
		}
		return u.insertWithReferenceRetry(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, EventBookingCreated, entity.ID(), entity.Reference().String(), userID, restaurant.ID, booking.StatusPending)

	view, err := u.bookingQueries.GetByIDSystem(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) ApproveBooking(ctx context.Context, bookingID, adminID uuid.UUID, note string) error {
	adminNote, err := booking.NewNote(note)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	return u.applyLifecycleEvent(ctx, bookingID, booking.EventApprove, EventBookingApproved, &adminID, adminNote, nil)
}

func (u *bookingUseCaseImpl) RejectBooking(ctx context.Context, bookingID, adminID uuid.UUID, note string) error {
	// A rejection always tells the customer why.
	adminNote, err := booking.NewRequiredNote(note)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	return u.applyLifecycleEvent(ctx, bookingID, booking.EventReject, EventBookingRejected, &adminID, adminNote, nil)
}

func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, role user.Role) error {
	var adminID *uuid.UUID
	if role.IsAdmin() {
		adminID = &actorID
	}
	guard := func(snap *shared.BookingSnapshot) error {
		if !role.IsAdmin() && snap.UserID != actorID {
			return ErrBookingAccessDenied
		}
		return nil
	}
	return u.applyLifecycleEvent(ctx, bookingID, booking.EventCancel, EventBookingCancelled, adminID, booking.Note{}, guard)
}

func (u *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID, adminID uuid.UUID) error {
	return u.applyLifecycleEvent(ctx, bookingID, booking.EventComplete, EventBookingCompleted, &adminID, booking.Note{}, nil)
}

// applyLifecycleEvent runs one transition: read the booking, consult the
// lifecycle table, apply a conditional status update, and release seats when
// the transition says so. All of it commits atomically.
func (u *bookingUseCaseImpl) applyLifecycleEvent(
	ctx context.Context,
	bookingID uuid.UUID,
	ev booking.Event,
	eventType string,
	adminID *uuid.UUID,
	adminNote booking.Note,
	guard func(*shared.BookingSnapshot) error,
) error {
	var snap *shared.BookingSnapshot
	var nextStatus booking.Status

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, readErr := tx.Reads().BookingByID(ctx, bookingID)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}
		snap = found

		if guard != nil {
			if guardErr := guard(snap); guardErr != nil {
				return guardErr
			}
		}

		next, effect, trErr := booking.Transition(snap.Status, ev)
		if trErr != nil {
			return errs.Mark(trErr, ErrInvalidStatusTransition)
		}
		nextStatus = next

		now := u.clock.Now()
		params := shared.UpdateStatusParams{
			BookingID:  bookingID,
			FromStatus: snap.Status,
			ToStatus:   next,
			AdminID:    adminID,
			DecidedAt:  &now,
		}
		if !adminNote.IsEmpty() {
			note := adminNote.String()
			params.AdminNote = &note
		}

		updated, updErr := tx.Bookings().UpdateStatus(ctx, params)
		if updErr != nil {
			return errs.Mark(updErr, ErrDatabaseOperationFailed)
		}
		if !updated {
			// A concurrent transition won between our read and the guarded
			// update. Re-read so the error carries the status that holds now.
			current, rereadErr := tx.Reads().BookingByID(ctx, bookingID)
			if rereadErr != nil {
				if infra.IsKind(rereadErr, infra.KindNotFound) {
					return ErrBookingNotFound
				}
				return ErrBookingConflict
			}
			return errs.Mark(
				&booking.InvalidTransitionError{Current: current.Status, Event: ev},
				ErrInvalidStatusTransition,
			)
		}

		if effect == booking.EffectRelease {
			if relErr := tx.Slots().Release(ctx, snap.SlotKey(), snap.PartySize); relErr != nil {
				return errs.Mark(relErr, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.publish(ctx, eventType, snap.ID, snap.Reference, snap.UserID, snap.RestaurantID, nextStatus)
	return nil
}

func (u *bookingUseCaseImpl) validateRestaurant(ctx context.Context, id uuid.UUID) (*shared.RestaurantSnapshot, error) {
	restaurant, err := u.uow.Reads().RestaurantByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !restaurant.IsActive {
		return nil, ErrRestaurantInactive
	}
	return restaurant, nil
}

// buildLineItems resolves requested menu items and freezes their current
// prices into the line items.
func (u *bookingUseCaseImpl) buildLineItems(
	ctx context.Context,
	restaurantID uuid.UUID,
	requested []reqdto.BookingItemData,
) ([]booking.LineItem, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(requested))
	for _, item := range requested {
		ids = append(ids, item.MenuItemID)
	}

	snapshots, err := u.uow.Reads().MenuItemsByIDs(ctx, restaurantID, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	byID := make(map[uuid.UUID]shared.MenuItemSnapshot, len(snapshots))
	for _, snap := range snapshots {
		byID[snap.ID] = snap
	}

	items := make([]booking.LineItem, 0, len(requested))
	for _, req := range requested {
		snap, ok := byID[req.MenuItemID]
		if !ok {
			return nil, ErrMenuItemNotFound
		}
		if !snap.IsAvailable {
			return nil, ErrMenuItemUnavailable
		}
		item, itemErr := booking.NewLineItem(snap.ID, req.Quantity, int(snap.PriceCents))
		if itemErr != nil {
			return nil, errs.Mark(itemErr, ErrDomainValidation)
		}
		items = append(items, item)
	}
	return items, nil
}

// insertWithReferenceRetry regenerates the reference exactly once when the
// unique index reports a collision; a second collision is surfaced. The first
// attempt runs in a savepoint: Postgres aborts the transaction on the failed
// INSERT, and without the savepoint the retry could never commit.
func (u *bookingUseCaseImpl) insertWithReferenceRetry(ctx context.Context, tx shared.Tx, entity *booking.Booking) error {
	err := tx.Atomic(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, entity)
	})
	if err == nil {
		return nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return u.mapCreateError(err)
	}

	slog.Warn("booking reference collision, regenerating",
		"booking_id", entity.ID(),
		"reference", entity.Reference().String(),
	)
	entity.RegenerateReference(u.clock.Now())

	if err := tx.Bookings().Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrBookingConflict
		}
		return u.mapCreateError(err)
	}
	return nil
}

func (u *bookingUseCaseImpl) mapReserveError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrSlotNotFound
	case infra.IsKind(err, infra.KindUnavailable):
		return ErrSlotClosed
	case infra.IsKind(err, infra.KindConflict):
		return ErrInsufficientCapacity
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

func (u *bookingUseCaseImpl) mapCreateError(err error) error {
	if infra.IsKind(err, infra.KindForeignKeyViolated) {
		return errs.Mark(err, ErrDomainValidation)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func (u *bookingUseCaseImpl) publish(
	ctx context.Context,
	eventType string,
	bookingID uuid.UUID,
	reference string,
	userID, restaurantID uuid.UUID,
	status booking.Status,
) {
	if u.events == nil {
		return
	}
	event := BookingEvent{
		Type:         eventType,
		BookingID:    bookingID,
		Reference:    reference,
		UserID:       userID,
		RestaurantID: restaurantID,
		Status:       status.String(),
		OccurredAt:   u.clock.Now(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish booking event",
			"type", eventType,
			"booking_id", bookingID,
			"error", err.Error(),
		)
	}
}
