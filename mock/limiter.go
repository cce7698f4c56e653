package mock

import "github.com/DennisFaucher/aisalesplan"

var _ aisalesplan.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of aisalesplan.Limiter.
type Limiter struct {
	AllowFn func(key string) bool
}

func (l *Limiter) Allow(key string) bool {
	return l.AllowFn(key)
}
