package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when registering with a taken username.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateEmail is returned when registering with a known email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput wraps rejected request fields.
	ErrInvalidInput = errors.New("invalid input")
)

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, aboutMe string) (*domain.User, error)
	TouchLastSeen(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrDuplicateUsername
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, firstName, lastName, aboutMe string) (*domain.User, error) {
	err := s.users.UpdateProfile(ctx, id, strings.TrimSpace(firstName), strings.TrimSpace(lastName), strings.TrimSpace(aboutMe))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *userService) TouchLastSeen(ctx context.Context, id int64) error {
	return s.users.TouchLastSeen(ctx, id, time.Now())
}

// sanitizeUser strips the credential hash before a user leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
