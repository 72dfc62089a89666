package readstore

import (
	"context"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const findUserByIDSQL = `
SELECT id, email, role, is_active FROM users WHERE id = $1`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID, &view.Email, &view.Role, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

const findUserByEmailSQL = `
SELECT id, email, role, name, is_active, last_login_at, created_at, password_hash
FROM users
WHERE email = $1`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, error) {
	var view queries.UserView
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&view.ID, &view.Email, &view.Role, &view.Name, &view.IsActive,
		&view.LastLoginAt, &view.CreatedAt, &view.PasswordHash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, nil
}
