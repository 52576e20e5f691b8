package server

import (
	"errors"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var errRateLimited = errors.New("rate limit exceeded")

// limiterStore hands out one token bucket per client key.
type limiterStore struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newLimiterStore(perSecond float64, burst int) *limiterStore {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &limiterStore{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (ls *limiterStore) get(key string) *rate.Limiter {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	l, ok := ls.limiters[key]
	if !ok {
		l = rate.NewLimiter(ls.limit, ls.burst)
		ls.limiters[key] = l
	}
	return l
}

func (ls *limiterStore) allow(key string) bool {
	return ls.get(key).Allow()
}

func (ls *limiterStore) forget(key string) {
	ls.mu.Lock()
	delete(ls.limiters, key)
	ls.mu.Unlock()
}

// rateLimit rejects requests once the remote address exhausts its bucket.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiters.allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
