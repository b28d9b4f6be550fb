package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"microblog/internal/cache"
	"microblog/internal/domain"
	"microblog/internal/repository"
)

// ErrPostNotFound is returned when the requested post does not exist.
var ErrPostNotFound = errors.New("post not found")

// PostService coordinates post creation and lookup.
type PostService interface {
	CreatePost(ctx context.Context, authorID int64, title, body string) (*domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error)
}

type postService struct {
	posts   repository.PostRepository
	users   repository.UserRepository
	follows repository.FollowRepository
	feeds   *cache.FeedCache
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, follows repository.FollowRepository, feeds *cache.FeedCache) PostService {
	return &postService{
		posts:   posts,
		users:   users,
		follows: follows,
		feeds:   feeds,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID int64, title, body string) (*domain.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	exists, err := s.users.Exists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	post := &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Body:     body,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	// The new post lands in the author's feed and in every follower's.
	followers, err := s.follows.FollowersOf(ctx, authorID)
	if err == nil {
		s.feeds.Invalidate(append(followers, authorID)...)
	}

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	return s.posts.ListByAuthors(ctx, []int64{authorID})
}
