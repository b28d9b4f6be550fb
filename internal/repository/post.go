package repository

import (
	"context"

	"microblog/internal/domain"
)

// PostRepository exposes persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	// ListByAuthors returns every post whose author is in authorIDs, newest
	// first; posts sharing a timestamp are ordered by descending id. The
	// store filters by author before sorting, so the cost is bounded by the
	// matching rows rather than the whole posts table.
	ListByAuthors(ctx context.Context, authorIDs []int64) ([]domain.Post, error)
}
