package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apierrors "github.com/covspace/site/internal/errors"
	logctx "github.com/covspace/site/internal/pkg/log"
)

// Лимитеры, не видевшие запросов дольше limiterIdle, удаляются при очередной чистке.
const (
	limiterIdle = 10 * time.Minute
	sweepEvery  = time.Minute
)

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiterStore — token bucket на каждый клиентский IP.
type limiterStore struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	limiters  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

// get возвращает лимитер IP, создавая его при первом обращении.
func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e, ok := s.limiters[ip]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(s.rps, s.burst)}
		s.limiters[ip] = e
	}
	e.seen = now

	return e.lim
}

func (s *limiterStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepEvery {
		return
	}
	s.lastSweep = now

	for ip, e := range s.limiters {
		if now.Sub(e.seen) > limiterIdle {
			delete(s.limiters, ip)
		}
	}
}

// RateLimit ограничивает частоту запросов с одного IP (token bucket).
// rps <= 0 делает мидлвар no-op. Сверх лимита — 429 в формате errors.WriteError.
func RateLimit(rps float64, burst int) Middleware {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}

		store := newLimiterStore(rps, burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !store.get(ip).Allow() {
				logctx.From(r.Context()).Warn("rate_limited",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", "1")
				apierrors.WriteError(w, r, apierrors.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP — хост из RemoteAddr. Заголовкам прокси не доверяем.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
