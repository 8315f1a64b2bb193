package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitMiddleware limits requests per client IP over a sliding window.
type RateLimitMiddleware struct {
	requests  map[string][]time.Time
	mu        sync.Mutex
	now       func() time.Time
	lastSweep time.Time
	// Forwarding headers are honoured only when the peer is in one of these.
	trustedProxies []netip.Prefix
}

// NewRateLimitMiddleware creates a rate limiter. Requests arriving from a
// trusted proxy are keyed by the client address in X-Forwarded-For or
// X-Real-IP; all others by their peer address.
func NewRateLimitMiddleware(trustedProxies ...netip.Prefix) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		requests:       make(map[string][]time.Time),
		now:            time.Now,
		trustedProxies: trustedProxies,
	}
}

// RateLimit allows at most maxRequests per client within window.
// A non-positive maxRequests disables limiting.
func (m *RateLimitMiddleware) RateLimit(maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxRequests <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.allow(m.clientIP(r), maxRequests, window) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *RateLimitMiddleware) allow(client string, maxRequests int, window time.Duration) bool {
	now := m.now()
	windowStart := now.Add(-window)

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= window {
		m.sweep(windowStart)
		m.lastSweep = now
	}

	recent := m.requests[client][:0]
	for _, ts := range m.requests[client] {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}
	if len(recent) >= maxRequests {
		m.requests[client] = recent
		return false
	}
	m.requests[client] = append(recent, now)
	return true
}

// sweep drops clients with no request inside the window. Timestamps are
// appended in order, so the last one is the newest.
func (m *RateLimitMiddleware) sweep(windowStart time.Time) {
	for client, times := range m.requests {
		if len(times) == 0 || !times[len(times)-1].After(windowStart) {
			delete(m.requests, client)
		}
	}
}

func (m *RateLimitMiddleware) trusted(addr netip.Addr) bool {
	for _, p := range m.trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the address requests are counted against.
func (m *RateLimitMiddleware) clientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	addr, err := netip.ParseAddr(peer)
	if err != nil || !m.trusted(addr.Unmap()) {
		return peer
	}

	// Walk X-Forwarded-For from the nearest hop and stop at the first
	// address that is not one of our proxies.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			hopAddr, err := netip.ParseAddr(hop)
			if err != nil {
				break
			}
			if i == 0 || !m.trusted(hopAddr.Unmap()) {
				return hop
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		if _, err := netip.ParseAddr(ip); err == nil {
			return ip
		}
	}
	return peer
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
