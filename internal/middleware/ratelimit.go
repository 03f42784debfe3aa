package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hongminglow/movie-catalog/internal/http/respond"
)

// MsgTooManyAttempts is returned while a client is blocked.
const MsgTooManyAttempts = "Too many attempts, please try again later."

// maxTrackedClients is the map size past which expired entries are pruned.
const maxTrackedClients = 10000

type attemptData struct {
	count        int
	firstAttempt time.Time
}

// RateLimiter blocks a client IP for a while after repeated failed attempts
// at an endpoint such as login or signup.
type RateLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string]*attemptData
	blocked     map[string]time.Time
	maxClients  int
	now         func() time.Time
}

// NewRateLimiter allows maxAttempts failures per window before blocking for one window.
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string]*attemptData),
		blocked:     make(map[string]time.Time),
		maxClients:  maxTrackedClients,
		now:         time.Now,
	}
}

// Allow returns false if the IP is currently blocked and clears expired blocks.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.blocked[ip]; ok {
		if l.now().Before(until) {
			return false
		}
		delete(l.blocked, ip)
		delete(l.attempts, ip)
	}
	return true
}

// RecordFailure counts a failed attempt and blocks the IP at the threshold.
func (l *RateLimiter) RecordFailure(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.attempts) > l.maxClients || len(l.blocked) > l.maxClients {
		l.prune(now)
	}

	data, ok := l.attempts[ip]
	if !ok || now.Sub(data.firstAttempt) > l.window {
		data = &attemptData{firstAttempt: now}
		l.attempts[ip] = data
	}
	data.count++
	if data.count >= l.maxAttempts {
		l.blocked[ip] = now.Add(l.window)
	}
}

// prune drops counters whose window has passed and blocks that have expired.
// Callers hold l.mu.
func (l *RateLimiter) prune(now time.Time) {
	for ip, data := range l.attempts {
		if now.Sub(data.firstAttempt) > l.window {
			delete(l.attempts, ip)
		}
	}
	for ip, until := range l.blocked {
		if !now.Before(until) {
			delete(l.blocked, ip)
		}
	}
}

// Reset forgets the IP's failures, used after a successful attempt.
func (l *RateLimiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, ip)
	delete(l.blocked, ip)
}

// Limit guards next: blocked clients get 429, client errors count as failures
// and a success clears the count.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !l.Allow(ip) {
			respond.Error(w, http.StatusTooManyRequests, MsgTooManyAttempts)
			return
		}

		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		switch {
		case rec.status < http.StatusBadRequest:
			l.Reset(ip)
		case rec.status < http.StatusInternalServerError:
			l.RecordFailure(ip)
		}
	})
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
