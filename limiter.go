package aisalesplan

// Limiter rate limits requests per client key.
type Limiter interface {
	// Allow reports whether a request for key may proceed now.
	Allow(key string) bool
}
