package api

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/cache"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/ratelimit"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/logger"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/metrics"
)

// Instrument wraps a handler with request identity, access logging, metrics
// and panic recovery. Panics become a generic 500; details stay in the log.
func Instrument(endpoint string, log logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				if log != nil {
					log.Error(r.Context(), "handler panic",
						logger.String("endpoint", endpoint),
						logger.String("request_id", requestID),
						logger.String("identity", clientIdentity(r)),
						logger.String("query", r.URL.RawQuery),
						logger.Any("panic", rec))
				}
				writeInternalError(wrapped)
			}

			durationMs := float64(time.Since(start).Milliseconds())
			status := strconv.Itoa(wrapped.statusCode)
			metrics.RecordHTTPRequest(endpoint, r.Method, status)
			metrics.RecordHTTPRequestDuration(endpoint, r.Method, durationMs)

			if log != nil {
				log.Info(r.Context(), "request",
					logger.String("endpoint", endpoint),
					logger.String("method", r.Method),
					logger.String("status", status),
					logger.String("identity", clientIdentity(r)),
					logger.String("request_id", requestID))
			}
		}()

		next.ServeHTTP(wrapped, r)
	}
}

// RateLimitMiddleware checks admission before the request reaches business
// logic. A nil limiter disables admission control entirely.
func RateLimitMiddleware(limiter *ratelimit.Limiter, route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		decision := limiter.Allow(r.Context(), clientIdentity(r), route)
		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			body := errorBody(CodeRateLimitExceeded, "Too many requests. Please try again later.")
			body["retry_after"] = retryAfter
			writeJSON(w, http.StatusTooManyRequests, body)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// CacheMiddleware serves GET responses from the cache and populates it from
// the origin handler. Only 200 responses are ever cached; hits are marked
// with a cache_info block carrying the derived key and serve time.
func CacheMiddleware(store cache.Store, prefix string, ttl time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cache.Key(prefix, r.URL.Query())
		if payload, ok := store.Get(r.Context(), key); ok {
			writeCached(w, key, payload)
			return
		}

		rec := &bufferingWriter{header: make(http.Header), statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.statusCode == http.StatusOK {
			store.Set(r.Context(), key, rec.body.Bytes(), ttl)
		}
		rec.flushTo(w)
	}
}

// writeCached replays a cached payload, injecting cache_info. If the payload
// is not a JSON object it is replayed verbatim.
func writeCached(w http.ResponseWriter, key string, payload []byte) {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}
	body["cache_info"] = map[string]any{
		"cached":    true,
		"cache_key": key,
		"served_at": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, body)
}

// clientIdentity partitions rate-limit counters. The first X-Forwarded-For
// hop wins when present; otherwise the peer address.
func clientIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// bufferingWriter holds a full response so the cache middleware can decide
// whether to store it before sending it on.
type bufferingWriter struct {
	header     http.Header
	statusCode int
	body       bytes.Buffer
}

func (b *bufferingWriter) Header() http.Header { return b.header }

func (b *bufferingWriter) WriteHeader(code int) { b.statusCode = code }

func (b *bufferingWriter) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferingWriter) flushTo(w http.ResponseWriter) {
	for k, vals := range b.header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(b.body.Bytes())
}
