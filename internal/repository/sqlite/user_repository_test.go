package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	id := createTestUser(t, users, "bob")
	assert.Greater(t, id, int64(0))

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "bob", byID.Username)
	assert.Equal(t, "bob@test.com", byID.Email)
	assert.Nil(t, byID.LastSeen)

	byName, err := users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	exists, err := users.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.Exists(ctx, id+100)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepositoryDuplicateConstraints(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, users, "bob")

	_, err := users.Create(ctx, &domain.User{Username: "bob", Email: "other@test.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	_, err = users.Create(ctx, &domain.User{Username: "other", Email: "bob@test.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepositoryGetMissing(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	_, err := users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	id := createTestUser(t, users, "bob")

	require.NoError(t, users.UpdateProfile(ctx, id, "Bob", "Builder", "can we fix it"))
	user, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.FirstName)
	assert.Equal(t, "Builder", user.LastName)
	assert.Equal(t, "can we fix it", user.AboutMe)

	err = users.UpdateProfile(ctx, id+100, "a", "b", "c")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryTouchLastSeen(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	id := createTestUser(t, users, "bob")
	seenAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.TouchLastSeen(ctx, id, seenAt))

	user, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user.LastSeen)
	assert.True(t, user.LastSeen.Equal(seenAt))
}
