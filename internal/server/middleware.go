package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rohankatakam/recipegraph/internal/logging"
	"github.com/rohankatakam/recipegraph/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware keeps a caller-supplied X-Request-ID or assigns a new one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

// requestLogMiddleware logs one line per request and feeds the HTTP metrics.
// The route label is the chi pattern, available only after routing.
func requestLogMiddleware(logger logrus.FieldLogger, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			duration := time.Since(start)

			if recorder != nil {
				recorder.ObserveRequest(r.Method, route, status, duration)
			}

			entry := logger.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       route,
				"status":      status,
				"duration_ms": duration.Milliseconds(),
				"request_id":  logging.RequestIDFromContext(r.Context()),
			})
			if status >= 500 {
				entry.Warn("request served")
			} else {
				entry.Info("request served")
			}
		})
	}
}

// rateLimitMiddleware enforces one token bucket shared by all clients.
// Returns a pass-through middleware when limit is zero.
func rateLimitMiddleware(limit float64, burst int, logger logrus.FieldLogger) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.WithFields(logrus.Fields{
					"path":       r.URL.Path,
					"request_id": logging.RequestIDFromContext(r.Context()),
				}).Warn("rate limit exceeded")
				w.Header().Set("Retry-After", "1")
				writeAPIError(w, http.StatusTooManyRequests, "rate limit exceeded", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
