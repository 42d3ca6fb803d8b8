package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no user matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the data-access contract. Service depends only on
// this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByLogin(ctx context.Context, login string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindConflict(ctx context.Context, username, email string) (*User, error)
}
