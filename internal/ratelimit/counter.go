package ratelimit

import "sync"

// Counter keeps a monotonically increasing request count per API key for the
// lifetime of the process. There is no reset or expiry window.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// Incr bumps the count for key and returns the new value.
func (c *Counter) Incr(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[key]++

	return c.counts[key]
}

// Count returns the current count for key without incrementing it.
func (c *Counter) Count(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[key]
}
