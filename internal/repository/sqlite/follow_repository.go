package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"microblog/internal/repository"
)

const createFollowsTable = `
CREATE TABLE IF NOT EXISTS follows (
	follower_id INTEGER NOT NULL,
	followed_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY(follower_id, followed_id),
	FOREIGN KEY(follower_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY(followed_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_follows_followed_id ON follows(followed_id);
`

// FollowRepository stores follow edges as rows keyed by the ordered pair.
// The composite primary key makes duplicate pairs impossible, and the
// followed_id index answers reverse lookups without scanning the table.
type FollowRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) repository.FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFollowsTable); err != nil {
		return fmt.Errorf("create follows table: %w", err)
	}
	return nil
}

// Create inserts the edge (follower, followed). The insert is a single
// atomic statement, so a concurrent identical follow cannot race the
// existence check; an already-present edge is left untouched.
func (r *FollowRepository) Create(ctx context.Context, followerID, followedID int64) error {
	if _, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO follows (follower_id, followed_id, created_at)
VALUES (?, ?, ?)`,
		followerID,
		followedID,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert follow edge: %w", err)
	}
	return nil
}

// Delete removes the edge (follower, followed); removing an absent edge
// succeeds.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	if _, err := r.db.ExecContext(ctx, `
DELETE FROM follows WHERE follower_id = ? AND followed_id = ?`,
		followerID,
		followedID,
	); err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `
SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?)`,
		followerID,
		followedID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}
	return exists, nil
}

func (r *FollowRepository) FollowedBy(ctx context.Context, followerID int64) ([]int64, error) {
	return r.listIDs(ctx, `SELECT followed_id FROM follows WHERE follower_id = ?`, followerID)
}

func (r *FollowRepository) FollowersOf(ctx context.Context, followedID int64) ([]int64, error) {
	return r.listIDs(ctx, `SELECT follower_id FROM follows WHERE followed_id = ?`, followedID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, followerID int64) (int64, error) {
	return r.countEdges(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, followerID)
}

func (r *FollowRepository) CountFollowers(ctx context.Context, followedID int64) (int64, error) {
	return r.countEdges(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = ?`, followedID)
}

func (r *FollowRepository) listIDs(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list follow edges: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow edge: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate follow edges: %w", err)
	}
	return ids, nil
}

func (r *FollowRepository) countEdges(ctx context.Context, query string, arg int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&count); err != nil {
		return 0, fmt.Errorf("count follow edges: %w", err)
	}
	return count, nil
}
