package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostServiceCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.registerUser(t, "bob")

	post, err := env.posts.CreatePost(ctx, bob, "hello", "first post")
	require.NoError(t, err)
	assert.Greater(t, post.ID, int64(0))
	assert.Equal(t, bob, post.AuthorID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := env.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)

	_, err = env.posts.GetPost(ctx, post.ID+100)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostServiceValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.registerUser(t, "bob")

	_, err := env.posts.CreatePost(ctx, bob, "", "body")
	assert.Error(t, err)

	_, err = env.posts.CreatePost(ctx, bob, "title", "   ")
	assert.Error(t, err)

	_, err = env.posts.CreatePost(ctx, bob+100, "title", "body")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostServiceListByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.registerUser(t, "bob")
	john := env.registerUser(t, "john")

	_, err := env.posts.CreatePost(ctx, bob, "one", "body")
	require.NoError(t, err)
	_, err = env.posts.CreatePost(ctx, john, "two", "body")
	require.NoError(t, err)

	posts, err := env.posts.ListByAuthor(ctx, bob)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "one", posts[0].Title)
}
