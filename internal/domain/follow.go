package domain

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FollowedID. At most one edge exists per ordered pair, and a user never
// follows itself. The edge carries no state beyond its existence.
type Follow struct {
	FollowerID int64
	FollowedID int64
	CreatedAt  time.Time
}
