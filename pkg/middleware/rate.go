// Package middleware provides the HTTP middleware chain for the API.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// window tracks request counts for one client IP within a fixed interval.
type window struct {
	mu    sync.Mutex
	hits  int
	until time.Time
}

func (w *window) take(limit int, span time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.After(w.until) {
		w.hits = 0
		w.until = now.Add(span)
	}
	w.hits++
	return w.hits <= limit
}

type limiter struct {
	mu      sync.Mutex
	clients map[string]*window
}

func (l *limiter) get(ip string, span time.Duration) *window {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.clients[ip]
	if !ok {
		w = &window{until: time.Now().Add(span)}
		l.clients[ip] = w
	}
	return w
}

// sweep drops windows that have expired so the map stays bounded.
func (l *limiter) sweep() {
	for range time.Tick(time.Minute) {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.clients {
			w.mu.Lock()
			stale := now.After(w.until)
			w.mu.Unlock()
			if stale {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit caps each client IP at limit requests per span.
func RateLimit(limit int, span time.Duration) func(http.Handler) http.Handler {
	l := &limiter{clients: map[string]*window{}}
	go l.sweep()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}
			if !l.get(ip, span).take(limit, span) {
				http.Error(w, `{"status":429,"message":"Too Many Requests"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
