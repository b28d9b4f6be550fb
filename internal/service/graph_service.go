package service

import (
	"context"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/repository"
)

// ErrSelfFollow is returned when a user attempts to follow itself.
var ErrSelfFollow = errors.New("a user cannot follow itself")

// GraphService owns the follow-edge set. Edge existence is the single
// source of truth for the social graph: there is no neighbor list kept on
// the user side to drift out of sync.
type GraphService interface {
	// Follow creates the edge follower→followed. Following a user twice is
	// equivalent to following once; following yourself is an error.
	Follow(ctx context.Context, followerID, followedID int64) error
	// Unfollow removes the edge follower→followed. Removing an edge that
	// does not exist is a success, not an error.
	Unfollow(ctx context.Context, followerID, followedID int64) error
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	FollowedBy(ctx context.Context, followerID int64) ([]int64, error)
	FollowersOf(ctx context.Context, followedID int64) ([]int64, error)
	CountFollowing(ctx context.Context, followerID int64) (int64, error)
	CountFollowers(ctx context.Context, followedID int64) (int64, error)
}

type graphService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	feeds   *cache.FeedCache
}

func NewGraphService(follows repository.FollowRepository, users repository.UserRepository, feeds *cache.FeedCache) GraphService {
	return &graphService{
		follows: follows,
		users:   users,
		feeds:   feeds,
	}
}

func (s *graphService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrSelfFollow
	}
	if err := s.checkUsers(ctx, followerID, followedID); err != nil {
		return err
	}
	if err := s.follows.Create(ctx, followerID, followedID); err != nil {
		return err
	}
	s.feeds.Invalidate(followerID)
	return nil
}

func (s *graphService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		// no such edge can exist, and removal is idempotent anyway
		return nil
	}
	if err := s.follows.Delete(ctx, followerID, followedID); err != nil {
		return err
	}
	s.feeds.Invalidate(followerID)
	return nil
}

func (s *graphService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, followedID)
}

func (s *graphService) FollowedBy(ctx context.Context, followerID int64) ([]int64, error) {
	return s.follows.FollowedBy(ctx, followerID)
}

func (s *graphService) FollowersOf(ctx context.Context, followedID int64) ([]int64, error) {
	return s.follows.FollowersOf(ctx, followedID)
}

func (s *graphService) CountFollowing(ctx context.Context, followerID int64) (int64, error) {
	return s.follows.CountFollowing(ctx, followerID)
}

func (s *graphService) CountFollowers(ctx context.Context, followedID int64) (int64, error) {
	return s.follows.CountFollowers(ctx, followedID)
}

func (s *graphService) checkUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}
	}
	return nil
}
