package http

import "time"

// SetClock replaces the limiter clock and restarts its sweep schedule.
func (l *ClientLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	l.lastSweep = now()
}
