// Package cache provides an in-memory store for predicted structures,
// keyed by sequence digest, so repeated predictions of the same
// sequence skip the fold API entirely.
package cache

import (
	"sync"
	"time"
)

const janitorInterval = time.Minute

type entry struct {
	structure string
	expires   time.Time
}

// Cache keeps predicted structures in memory for a fixed time. A bound
// on the number of entries keeps memory use flat; when the cache is
// full, the entry closest to expiry makes room.
type Cache struct {
	ttl     time.Duration
	entries int

	mu    sync.RWMutex
	items map[string]entry

	stop chan struct{}
	done chan struct{}
}

func New(ttl time.Duration, entries int) *Cache {
	c := &Cache{
		ttl:     ttl,
		entries: entries,
		items:   make(map[string]entry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go c.janitor()

	return c
}

// Get returns the structure cached under the given sequence digest.
func (c *Cache) Get(digest string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[digest]
	if !found || time.Now().After(item.expires) {
		return "", false
	}

	return item.structure, true
}

// Set stores a structure under the given sequence digest.
func (c *Cache) Set(digest, structure string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.items[digest]; !found && len(c.items) >= c.entries {
		c.evict()
	}

	c.items[digest] = entry{
		structure: structure,
		expires:   time.Now().Add(c.ttl),
	}
}

// evict drops the entry closest to expiry. Callers must hold the write
// lock.
func (c *Cache) evict() {
	var (
		oldest  string
		expires time.Time
	)

	for digest, item := range c.items {
		if expires.IsZero() || item.expires.Before(expires) {
			oldest = digest
			expires = item.expires
		}
	}

	delete(c.items, oldest)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stop terminates the janitor. The cache itself stays usable.
func (c *Cache) Stop() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	<-c.done
}

func (c *Cache) janitor() {
	defer close(c.done)

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for digest, item := range c.items {
		if now.After(item.expires) {
			delete(c.items, digest)
		}
	}
}
