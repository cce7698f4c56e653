package http

import (
	"sync"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	"golang.org/x/time/rate"
)

var _ aisalesplan.Limiter = (*ClientLimiter)(nil)

// maxIdleClients is the number of tracked clients that forces an early
// sweep of idle limiters.
const maxIdleClients = 10000

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client key gets its own limiter so one busy client cannot exhaust
// the search quota of the others.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientEntry
	rps      float64
	burst    int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a new ClientLimiter allowing rps requests per
// second per client with the given burst. A burst below 1 is treated as 1.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientEntry),
		rps:      rps,
		burst:    burst,
		idle:      10 * time.Minute,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether the client identified by key may make a request now.
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle || len(l.limiters) >= maxIdleClients {
		l.evict(now)
	}
	entry, ok := l.limiters[key]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// evict drops limiters unused for longer than the idle period. It runs at
// most once per idle period unless the client map is full.
// Must be called with mu held.
func (l *ClientLimiter) evict(now time.Time) {
	l.lastSweep = now
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.idle {
			delete(l.limiters, key)
		}
	}
}
