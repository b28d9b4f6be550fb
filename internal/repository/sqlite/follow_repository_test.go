package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepositoryCreateExistsDelete(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, users, "bob")
	john := createTestUser(t, users, "john")

	exists, err := follows.Exists(ctx, bob, john)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, follows.Create(ctx, bob, john))
	exists, err = follows.Exists(ctx, bob, john)
	require.NoError(t, err)
	assert.True(t, exists)

	// edges are directed
	exists, err = follows.Exists(ctx, john, bob)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, follows.Delete(ctx, bob, john))
	exists, err = follows.Exists(ctx, bob, john)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepositoryCreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, users, "bob")
	john := createTestUser(t, users, "john")

	require.NoError(t, follows.Create(ctx, bob, john))
	require.NoError(t, follows.Create(ctx, bob, john))

	count, err := follows.CountFollowing(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepositoryDeleteMissingEdge(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, users, "bob")
	john := createTestUser(t, users, "john")

	require.NoError(t, follows.Delete(ctx, bob, john))
}

func TestFollowRepositoryBidirectionalLookup(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, users, "bob")
	john := createTestUser(t, users, "john")
	ann := createTestUser(t, users, "ann")

	require.NoError(t, follows.Create(ctx, bob, john))
	require.NoError(t, follows.Create(ctx, bob, ann))
	require.NoError(t, follows.Create(ctx, john, ann))

	followed, err := follows.FollowedBy(ctx, bob)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{john, ann}, followed)

	followers, err := follows.FollowersOf(ctx, ann)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{bob, john}, followers)

	following, err := follows.CountFollowing(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(2), following)

	count, err := follows.CountFollowers(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFollowRepositoryRejectsUnknownUsers(t *testing.T) {
	db := openTestDB(t)
	follows := NewFollowRepository(db)

	err := follows.Create(context.Background(), 100, 200)
	assert.Error(t, err)
}
