package queries

import (
	"context"

	"tablebook/internal/domain/user"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingViewNotFound = errs.New("booking not found")
	ErrBookingAccessDenied = errs.New("booking access denied")
	ErrBookingQueryFailed  = errs.New("booking query failed")
)

const defaultListLimit = 50

// BookingFilter narrows admin listings. Nil fields match everything.
type BookingFilter struct {
	Status       *string
	RestaurantID *uuid.UUID
	Date         *string
}

type BookingQueries interface {
	// GetByID enforces ownership: customers see only their own bookings,
	// admins see all.
	GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips access checks, for read-after-write inside the
	// command layer.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingListItem, error)
	ListAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*BookingListItem, error)
	// PendingCount feeds the admin dashboard badge.
	PendingCount(ctx context.Context) (int64, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int32) ([]*BookingListItem, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, role user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.IsAdmin() && view.UserID != actorID {
		// Hide existence from non-owners rather than answering 403.
		return nil, ErrBookingViewNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingViewNotFound
		}
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := q.repo.FindByUserID(ctx, userID, int32(limit), int32(offset))
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return rows, nil
}

func (q *bookingQueriesImpl) PendingCount(ctx context.Context) (int64, error) {
	count, err := q.repo.CountByStatus(ctx, "pending")
	if err != nil {
		return 0, errs.Mark(err, ErrBookingQueryFailed)
	}
	return count, nil
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := q.repo.FindAll(ctx, filter, int32(limit), int32(offset))
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return rows, nil
}
