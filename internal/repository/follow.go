package repository

import "context"

// FollowRepository owns the follow-edge set. Edges are identified by the
// ordered pair (follower, followed); inserting an existing pair and deleting
// an absent one are both no-ops, so every mutation is idempotent.
type FollowRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	// FollowedBy returns the ids of every user followerID follows.
	FollowedBy(ctx context.Context, followerID int64) ([]int64, error)
	// FollowersOf returns the ids of every user following followedID.
	FollowersOf(ctx context.Context, followedID int64) ([]int64, error)
	CountFollowing(ctx context.Context, followerID int64) (int64, error)
	CountFollowers(ctx context.Context, followedID int64) (int64, error)
}
