package handler

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"filippo.io/csrf/gorilla"
	"github.com/Shivanand-hulikatti/edusync/internal/session"
	"github.com/alexedwards/scs/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contextKey string

const viewerKey contextKey = "viewer_id"

// viewerID returns the signed-in user's ID, or "" for anonymous requests.
func viewerID(r *http.Request) string {
	id, _ := r.Context().Value(viewerKey).(string)
	return id
}

// Viewer copies the session's user ID into the request context.
// It must run inside sm.LoadAndSave.
func Viewer(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := sm.GetString(r.Context(), session.KeyUserID); id != "" {
				r = r.WithContext(context.WithValue(r.Context(), viewerKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireViewer rejects anonymous requests with 401.
func RequireViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewerID(r) == "" {
			writeError(w, http.StatusUnauthorized, "Please sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logger writes one structured access log line per request.
func Logger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
					zap.String("remote_addr", r.RemoteAddr),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// CORS allows credentialed requests from the configured dashboard origins.
func CORS(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && slices.Contains(allowed, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CSRF rejects cross-origin state-changing requests using Fetch metadata.
// Origins are given as full URLs and trusted by host.
func CSRF(authKey []byte, origins []string, log *zap.Logger) func(http.Handler) http.Handler {
	onFailure := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reason := "unknown"
		if err := csrf.FailureReason(r); err != nil {
			reason = err.Error()
		}
		log.Warn("CSRF validation failed",
			zap.String("reason", reason),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("origin", r.Header.Get("Origin")),
			zap.String("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")),
		)
		writeError(w, http.StatusForbidden, "Cross-site request rejected")
	})

	opts := []csrf.Option{csrf.ErrorHandler(onFailure)}
	if hosts := originHosts(origins); len(hosts) > 0 {
		opts = append(opts, csrf.TrustedOrigins(hosts))
	}
	return csrf.Protect(authKey, opts...)
}

func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		u, err := url.Parse(strings.TrimSpace(o))
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}

// maxTrackedClients bounds the per-IP limiters. The least recently seen
// client is evicted first.
const maxTrackedClients = 10_000

// IPRateLimiter throttles requests per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter allows rps requests per second per IP with the given burst.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	// lru.New only fails for a non-positive size.
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &IPRateLimiter{
		limiters: limiters,
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters.Get(ip); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.limiters.Add(ip, limiter)
	return limiter
}

// Middleware answers 429 once a client exceeds its budget.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.get(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "2")
			writeError(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP reads RemoteAddr. Behind a trusted proxy chi's RealIP middleware
// has already rewritten it from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
