package subscriptions

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/subdeck/internal/models"
)

// cacheKey is the cache file name within the state directory.
const cacheKey = "yt_subscriptions_cache"

// cacheTTL is how long a cached subscription collection stays valid.
const cacheTTL = 15 * time.Minute

// cacheEntry is the persisted blob: the full merged collection plus the
// fetch timestamp it is aged against.
type cacheEntry struct {
	Data      []models.Subscription `json:"data"`
	Timestamp time.Time             `json:"timestamp"`
}

// Cache is the time-boxed subscription cache. Entries are written whole and
// deleted whole; expiry on read and explicit invalidation both remove the
// file so the next read is a guaranteed miss.
type Cache struct {
	dir string
	now func() time.Time
}

// NewCache creates a cache rooted at the given state directory.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, cacheKey)
}

// Get returns the cached collection when a valid (unexpired) entry exists.
// Expired or unreadable entries are deleted before reporting a miss.
func (c *Cache) Get() ([]models.Subscription, bool) {
	data, err := os.ReadFile(c.path())
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.Invalidate()
		return nil, false
	}

	if c.now().Sub(entry.Timestamp) >= cacheTTL {
		c.Invalidate()
		return nil, false
	}

	return entry.Data, true
}

// Put stores the collection with a fresh timestamp, replacing any prior
// entry wholesale.
func (c *Cache) Put(subs []models.Subscription) error {
	entry := cacheEntry{Data: subs, Timestamp: c.now()}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.path(), data, 0600)
}

// Invalidate deletes the cache entry unconditionally. Used before a forced
// refresh and after a successful unsubscribe.
func (c *Cache) Invalidate() {
	os.Remove(c.path())
}
