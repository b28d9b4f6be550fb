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

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(author_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts(author_id, created_at);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO posts (author_id, title, body, created_at)
VALUES (?, ?, ?, ?)`,
		post.AuthorID,
		post.Title,
		post.Body,
		post.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, author_id, title, body, created_at
FROM posts
WHERE id = ?`,
		id,
	)

	var post domain.Post
	if err := row.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []int64) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(authorIDs))
	args := make([]any, len(authorIDs))
	for i, id := range authorIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
SELECT id, author_id, title, body, created_at
FROM posts
WHERE author_id IN (%s)
ORDER BY created_at DESC, id DESC`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts by authors: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}
	return posts, nil
}
