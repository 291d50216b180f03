package users

import "context"

// UserRepo persists credential records. Lookups of a missing user return errors.ErrUserNotFound.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
