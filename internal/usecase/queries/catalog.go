package queries

import (
	"context"

	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRestaurantViewNotFound = errs.New("restaurant not found")
	ErrCatalogQueryFailed     = errs.New("catalog query failed")
)

type CatalogQueries interface {
	ListRestaurants(ctx context.Context) ([]*RestaurantView, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
	ListMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItemView, error)
	ListDietaryPreferences(ctx context.Context) ([]*DietaryPreferenceView, error)
	// ListAvailability returns the generated slots for one restaurant and
	// calendar date, in slot-time order.
	ListAvailability(ctx context.Context, restaurantID uuid.UUID, date string) ([]*SlotView, error)
}

type CatalogViewRepo interface {
	FindRestaurants(ctx context.Context) ([]*RestaurantView, error)
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
	FindMenuItemsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItemView, error)
	FindDietaryPreferences(ctx context.Context) ([]*DietaryPreferenceView, error)
	FindSlots(ctx context.Context, restaurantID uuid.UUID, date string) ([]*SlotView, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListRestaurants(ctx context.Context) ([]*RestaurantView, error) {
	rows, err := q.repo.FindRestaurants(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return rows, nil
}

func (q *catalogQueriesImpl) GetRestaurant(ctx context.Context, id uuid.UUID) (*RestaurantView, error) {
	view, err := q.repo.FindRestaurantByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantViewNotFound
		}
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return view, nil
}

func (q *catalogQueriesImpl) ListMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItemView, error) {
	rows, err := q.repo.FindMenuItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return rows, nil
}

func (q *catalogQueriesImpl) ListDietaryPreferences(ctx context.Context) ([]*DietaryPreferenceView, error) {
	rows, err := q.repo.FindDietaryPreferences(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return rows, nil
}

func (q *catalogQueriesImpl) ListAvailability(ctx context.Context, restaurantID uuid.UUID, date string) ([]*SlotView, error) {
	rows, err := q.repo.FindSlots(ctx, restaurantID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return rows, nil
}
