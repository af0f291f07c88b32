// Package cache holds recently computed analyses so the HTTP layer does
// not hammer the GitHub API for the same account. The engine itself stays
// stateless; caching is strictly a serving concern.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/deckardlabs/baseline/pkg/models"
)

// Entry is one cached analysis response.
type Entry struct {
	Profile    models.AccountProfile
	Analysis   *models.AnalysisResult
	EventCount int
}

// ResultCache is the lookaside store for computed analyses.
// Implementations can use any backend; the in-memory LRU below is enough
// for a single instance.
type ResultCache interface {
	// Get returns the cached entry for a login, if still fresh.
	Get(login string) (*Entry, bool)

	// Put stores an entry under the login.
	Put(login string, entry *Entry)
}

// LRUCache is a size-bounded, TTL-expiring in-memory ResultCache. Logins
// are case-insensitive, so keys are lowercased on the way in.
type LRUCache struct {
	lru *expirable.LRU[string, *Entry]
}

// NewLRUCache creates a cache holding at most size entries, each expiring
// ttl after insertion.
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		lru: expirable.NewLRU[string, *Entry](size, nil, ttl),
	}
}

func (c *LRUCache) Get(login string) (*Entry, bool) {
	return c.lru.Get(strings.ToLower(login))
}

func (c *LRUCache) Put(login string, entry *Entry) {
	c.lru.Add(strings.ToLower(login), entry)
}
