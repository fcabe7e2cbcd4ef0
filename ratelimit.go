package main

import (
	"net/http"
	"sync"
	"time"

	"balvis/httputil"
)

// rateLimiter is a per-IP fixed-window limiter. Single-instance deployments
// only; state lives in memory.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	remaining int
	resetAt   time.Time
}

func newRateLimiter(limit int, period time.Duration) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			rl.evictStale()
		}
	}()
	return rl
}

func (rl *rateLimiter) evictStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-rl.period)
	for ip, w := range rl.clients {
		if w.resetAt.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[ip]
	if !ok || now.After(w.resetAt) {
		rl.clients[ip] = &window{remaining: rl.limit - 1, resetAt: now.Add(rl.period)}
		return true
	}
	if w.remaining <= 0 {
		return false
	}
	w.remaining--
	return true
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			ip = fwd
		}
		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			httputil.WriteError(w, 429, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
