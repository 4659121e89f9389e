package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader  = "X-Request-Id"
	clientKeyUnknown = "unknown"
)

type principalKey struct{}

// principalFrom returns the acting user id stored by requirePrincipal.
func principalFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(principalKey{}).(int64)
	return id, ok
}

func (s *HTTPServer) userHeader() string {
	if h := strings.TrimSpace(s.cfg.UserHeader); h != "" {
		return h
	}
	return models.DefaultUserHeader
}

// requestLogger tags the request with an id and logs one line once it is served.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		reqLog := s.log.With().Str("request_id", requestID).Logger()
		ctx := reqLog.WithContext(r.Context())

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		event := reqLog.Info()
		if recorder.status >= http.StatusInternalServerError {
			event = reqLog.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// observe records request metrics under the matched route pattern.
func (s *HTTPServer) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.ObserveHTTP(route, r.Method, recorder.status, time.Since(start))
	})
}

func (s *HTTPServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.RateLimit.RPS <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !s.limiter.getLimiter(s.clientKey(r)).Allow() {
			metrics.IncThrottled("rate_limit")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller by the user header when present, otherwise by remote host.
func (s *HTTPServer) clientKey(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get(s.userHeader())); raw != "" {
		return "user:" + raw
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return "ip:" + host
	}
	return clientKeyUnknown
}

func (s *HTTPServer) requirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := s.userHeader()
		raw := strings.TrimSpace(r.Header.Get(header))
		if raw == "" {
			writeError(w, http.StatusBadRequest, "missing "+header+" header")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+header+" header")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeQuota caps mutating requests per caller within the configured window.
// Quota store failures let the request through.
func (s *HTTPServer) writeQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.quota == nil || s.cfg.WriteQuota.Limit <= 0 || !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		key := s.clientKey(r)
		if id, ok := principalFrom(r.Context()); ok {
			key = "user:" + strconv.FormatInt(id, 10)
		}

		allowed, err := s.quota.Allow(r.Context(), key, s.cfg.WriteQuota.Limit, s.cfg.WriteQuota.Window)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("write quota check failed")
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			metrics.IncThrottled("write_quota")
			writeError(w, http.StatusTooManyRequests, "write quota exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
