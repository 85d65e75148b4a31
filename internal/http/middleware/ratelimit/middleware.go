package ratelimit

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"service-dispatch/internal/logx"
)

// Middleware ограничивает частоту запросов на ключ (курьер или IP)
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	limiter Limiter
	key     KeyFunc
}

// New создает новый Middleware. nil key means ByClientIP.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, key KeyFunc) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if key == nil {
		key = ByClientIP
	}
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
		key:     key,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := m.key(r)

			if !m.limiter.Allow(key) {
				if m.counter != nil {
					m.counter.Inc()
				}
				m.logger.Warn("rate limit exceeded",
					logx.String("key", key),
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
					// клиент мог оборвать соединение
					m.logger.Debug("rate limit response write failed",
						logx.String("key", key),
						logx.Err(err),
					)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ByClientIP charges the request to the caller's address.
func ByClientIP(r *http.Request) string {
	return "ip:" + clientIP(r)
}

// ByURLParam charges the request to a chi URL parameter, e.g. the courier ID,
// and falls back to the client address when the parameter is missing.
// It must run inside the route that declares the parameter.
func ByURLParam(name string) KeyFunc {
	return func(r *http.Request) string {
		if v := strings.TrimSpace(chi.URLParam(r, name)); v != "" {
			return name + ":" + v
		}
		return ByClientIP(r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
