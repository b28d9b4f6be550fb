package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewPostRepository(db).Init(ctx))
	require.NoError(t, NewFollowRepository(db).Init(ctx))
	return db
}

func createTestUser(t *testing.T, users repository.UserRepository, username string) int64 {
	t.Helper()

	id, err := users.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}

func createTestPost(t *testing.T, posts repository.PostRepository, authorID int64, title string, createdAt time.Time) int64 {
	t.Helper()

	id, err := posts.Create(context.Background(), &domain.Post{
		AuthorID:  authorID,
		Title:     title,
		Body:      "body of " + title,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return id
}
