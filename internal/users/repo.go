package users

import (
	"context"
	"errors"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

var (
	ErrInvalidID = errors.New("invalid user id")
	ErrDuplicate = errors.New("email already registered")
)

// Repo persists users. Emails are compared case-insensitively.
type Repo interface {
	// Create assigns an ID and stores user, or reports ErrDuplicate.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
