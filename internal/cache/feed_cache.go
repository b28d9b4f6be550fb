// Package cache provides an optional memcached layer for rendered feeds.
// A nil *FeedCache is valid and degrades every call to a miss/no-op, so
// callers never need to branch on whether caching is configured.
package cache

import (
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
)

type FeedCache struct {
	client *memcache.Client
	ttl    int32
}

// New connects to memcached at addr. ttlSeconds bounds staleness for
// entries that are never explicitly invalidated.
func New(addr string, ttlSeconds int32) *FeedCache {
	return &FeedCache{
		client: memcache.New(addr),
		ttl:    ttlSeconds,
	}
}

func feedKey(userID int64) string {
	return fmt.Sprintf("feed:%d", userID)
}

// Get returns the cached feed payload for a user, or ok=false on a miss
// or any cache error. Cache failures are soft: the caller recomputes.
func (c *FeedCache) Get(userID int64) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	item, err := c.client.Get(feedKey(userID))
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (c *FeedCache) Set(userID int64, payload []byte) {
	if c == nil {
		return
	}
	_ = c.client.Set(&memcache.Item{
		Key:        feedKey(userID),
		Value:      payload,
		Expiration: c.ttl,
	})
}

// Invalidate drops the cached feeds of every listed user. Used after a
// follow/unfollow and after a post lands in followers' feeds.
func (c *FeedCache) Invalidate(userIDs ...int64) {
	if c == nil {
		return
	}
	for _, id := range userIDs {
		_ = c.client.Delete(feedKey(id))
	}
}
