package domain

import "time"

// Post is a piece of content written by a user. A post belongs to its
// author for its whole lifetime; AuthorID is never reassigned.
type Post struct {
	ID        int64
	AuthorID  int64
	Title     string
	Body      string
	CreatedAt time.Time
}
