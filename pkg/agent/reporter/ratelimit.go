package reporter

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// countLimiter is a per-container token counter. Buckets refill by expiry,
// sized to one scrape interval, so each container gets at most limit open
// events per scrape. A non-positive limit disables limiting.
type countLimiter struct {
	limit   int64
	buckets *cache.Cache
}

func newCountLimiter(limit int64, window time.Duration) *countLimiter {
	return &countLimiter{
		limit:   limit,
		buckets: cache.New(window, 2*window),
	}
}

func (l *countLimiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}
	if err := l.buckets.Add(key, int64(1), cache.DefaultExpiration); err == nil {
		return l.limit >= 1
	}
	n, err := l.buckets.IncrementInt64(key, 1)
	if err != nil {
		return true
	}
	return n <= l.limit
}
