// Package results serves the short-lived results view. An analysis is held in
// memory for roughly one sitting; the persisted row is the durable copy.
package results

import (
	"sync"
	"time"
)

// Entry is everything the results view needs to render one analysis.
type Entry struct {
	Result         map[string]any `json:"result"`
	ResumeText     string         `json:"resumeText"`
	JobDescription string         `json:"jobDescription"`
}

type cacheItem struct {
	entry     Entry
	expiresAt time.Time
}

// Cache is an in-process TTL cache keyed by analysis id. Entries expire after
// the configured TTL and are swept lazily on writes. There is no durability
// guarantee; a restart empties it.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheItem
	now     func() time.Time
}

// DefaultTTL approximates how long a results tab stays open.
const DefaultTTL = 30 * time.Minute

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheItem),
		now:     time.Now,
	}
}

// Put stores an analysis under its id, replacing any previous entry.
func (c *Cache) Put(id string, result map[string]any, resumeText, jobDescription string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)
	c.entries[id] = cacheItem{
		entry: Entry{
			Result:         result,
			ResumeText:     resumeText,
			JobDescription: jobDescription,
		},
		expiresAt: now.Add(c.ttl),
	}
}

// Get returns the entry for id if it has not expired.
func (c *Cache) Get(id string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.entries[id]
	if !ok {
		return Entry{}, false
	}
	if c.now().After(item.expiresAt) {
		delete(c.entries, id)
		return Entry{}, false
	}
	return item.entry, true
}

func (c *Cache) sweepLocked(now time.Time) {
	for id, item := range c.entries {
		if now.After(item.expiresAt) {
			delete(c.entries, id)
		}
	}
}
