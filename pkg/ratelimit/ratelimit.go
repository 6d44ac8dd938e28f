// Package ratelimit, IP bazlı login deneme sınırlayıcı.
//
// Her key için sabit pencere tutulur: pencere içinde maxAttempts aşılırsa
// istek reddedilir. Başarılı login Reset ile sayacı temizler.
// Proje içi hiçbir pakete bağımlı değildir (handlers ↔ middleware cycle yok).
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count       int
	windowStart time.Time
}

// LoginLimiter, key (IP) bazlı deneme sayacı.
type LoginLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	now         func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter, limiter oluşturur ve dakikada bir eski bucket'ları temizler.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	go l.cleanupLoop(time.Minute)

	return l
}

// Allow, denemeyi sayar; limit aşıldıysa false.
func (l *LoginLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return l.maxAttempts > 0
	}

	b.count++
	return b.count <= l.maxAttempts
}

// Reset, başarılı login sonrası sayacı siler.
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, key)
}

// RetryAfter, pencerenin kapanmasına kalan süre (Retry-After header için).
func (l *LoginLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		return 0
	}

	remaining := l.window - l.now().Sub(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Close, temizleme goroutine'ini durdurur.
func (l *LoginLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *LoginLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

func (l *LoginLimiter) cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, key)
		}
	}
}

// ClientIP, istemci IP'sini döner.
// Öncelik: X-Forwarded-For (ilk değer), X-Real-IP, RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
