package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
	"microblog/internal/repository"
	"microblog/internal/repository/sqlite"
)

type testEnv struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository

	users UserService
	posts PostService
	graph GraphService
	feed  FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		userRepo:   sqlite.NewUserRepository(db),
		postRepo:   sqlite.NewPostRepository(db),
		followRepo: sqlite.NewFollowRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, env.userRepo.Init(ctx))
	require.NoError(t, env.postRepo.Init(ctx))
	require.NoError(t, env.followRepo.Init(ctx))

	env.users = NewUserService(env.userRepo)
	env.posts = NewPostService(env.postRepo, env.userRepo, env.followRepo, nil)
	env.graph = NewGraphService(env.followRepo, env.userRepo, nil)
	env.feed = NewFeedService(env.postRepo, env.followRepo, nil)
	return env
}

func (e *testEnv) registerUser(t *testing.T, username string) int64 {
	t.Helper()

	user, err := e.users.Register(context.Background(), username, username+"@test.com", "qwerty123", "", "")
	require.NoError(t, err)
	return user.ID
}

func (e *testEnv) insertPost(t *testing.T, authorID int64, title string, createdAt time.Time) int64 {
	t.Helper()

	id, err := e.postRepo.Create(context.Background(), &domain.Post{
		AuthorID:  authorID,
		Title:     title,
		Body:      "post from " + title,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return id
}
