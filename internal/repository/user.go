package repository

import (
	"context"
	"errors"
	"time"

	"microblog/internal/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, aboutMe string) error
	TouchLastSeen(ctx context.Context, id int64, seenAt time.Time) error
}
