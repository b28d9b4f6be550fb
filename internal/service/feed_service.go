package service

import (
	"context"
	"encoding/json"

	"microblog/internal/cache"
	"microblog/internal/domain"
	"microblog/internal/repository"
)

// FeedService computes the followed-posts feed: for a user, every post
// authored by that user or by anyone they follow, newest first.
type FeedService interface {
	// FollowedPosts returns a materialized snapshot of the feed. Posts are
	// ordered by timestamp descending, ties broken by descending post id,
	// and each post appears exactly once. Mutations after the call returns
	// are not reflected in the returned slice.
	FollowedPosts(ctx context.Context, userID int64) ([]domain.Post, error)
}

type feedService struct {
	posts   repository.PostRepository
	follows repository.FollowRepository
	feeds   *cache.FeedCache
}

func NewFeedService(posts repository.PostRepository, follows repository.FollowRepository, feeds *cache.FeedCache) FeedService {
	return &feedService{
		posts:   posts,
		follows: follows,
		feeds:   feeds,
	}
}

func (s *feedService) FollowedPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	if payload, ok := s.feeds.Get(userID); ok {
		var posts []domain.Post
		if err := json.Unmarshal(payload, &posts); err == nil {
			return posts, nil
		}
		// undecodable entry: fall through and recompute
	}

	// Fan-out first: the user's own posts are always in the feed, whatever
	// their outgoing edges look like.
	authorIDs, err := s.follows.FollowedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, userID)

	posts, err := s.posts.ListByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(posts); err == nil {
		s.feeds.Set(userID, payload)
	}
	return posts, nil
}
