package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	about_me TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	last_seen DATETIME NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, email, first_name, last_name, about_me, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.AboutMe,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if constraint := err.Error(); strings.Contains(constraint, "users.username") {
			return 0, repository.ErrDuplicateUsername
		} else if strings.Contains(constraint, "users.email") {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, email, first_name, last_name, about_me, password_hash, created_at, updated_at, last_seen
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, email, first_name, last_name, about_me, password_hash, created_at, updated_at, last_seen
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, aboutMe string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET first_name = ?, last_name = ?, about_me = ?, updated_at = ?
WHERE id = ?`,
		firstName,
		lastName,
		aboutMe,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id int64, seenAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen = ? WHERE id = ?`, seenAt.UTC(), id); err != nil {
		return fmt.Errorf("touch last seen: %w", err)
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user     domain.User
		lastSeen sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.AboutMe,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastSeen,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if lastSeen.Valid {
		t := lastSeen.Time
		user.LastSeen = &t
	}
	return &user, nil
}
