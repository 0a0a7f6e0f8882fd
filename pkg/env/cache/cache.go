package cache

import (
	"os"
	"strconv"
	"time"

	"github.com/app-sre/fabi/pkg/env"
)

const (
	defaultTTL        = 24 * time.Hour
	defaultMaxEntries = 256
)

// CacheEnv carries the in-memory prediction cache limits. Setting
// CACHE_TTL to 0 disables caching altogether.
type CacheEnv struct {
	TTL        time.Duration
	MaxEntries int
}

func NewCacheEnv() *CacheEnv {
	return &CacheEnv{}
}

func (c *CacheEnv) Populate() error {
	c.TTL = defaultTTL
	if s := os.Getenv("CACHE_TTL"); s != "" {
		ttl, err := env.Duration(s)
		if err != nil {
			return &env.TypeError{Name: "CACHE_TTL"}
		}
		c.TTL = ttl
	}

	c.MaxEntries = defaultMaxEntries
	if s := os.Getenv("CACHE_MAX_ENTRIES"); s != "" {
		entries, err := strconv.Atoi(s)
		if err != nil || entries < 1 {
			return &env.TypeError{Name: "CACHE_MAX_ENTRIES"}
		}
		c.MaxEntries = entries
	}

	return nil
}

func (c *CacheEnv) Enabled() bool {
	return c.TTL > 0
}
