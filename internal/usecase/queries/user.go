package queries

import (
	"context"

	"github.com/google/uuid"
)

// UserReadStore is consumed by auth commands and the auth middleware; it is
// deliberately not wrapped in a Queries facade.
type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*UserView, error)
}
