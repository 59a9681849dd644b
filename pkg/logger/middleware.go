package logger

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPLogConfig configures HTTP request logging behavior
type HTTPLogConfig struct {
	// SkipPaths contains path prefixes to skip logging (e.g., health checks)
	SkipPaths []string
}

// responseWriter wraps http.ResponseWriter to capture status and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

// RequestLoggingMiddleware logs each HTTP request with duration, status
// and client information, and propagates the request ID through the
// request context.
func RequestLoggingMiddleware(logger *Logger, config *HTTPLogConfig) func(next http.Handler) http.Handler {
	if config == nil {
		config = &HTTPLogConfig{SkipPaths: []string{"/health"}}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			if shouldSkip(config.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			requestID := requestIDFrom(r)
			ctx := context.WithValue(r.Context(), "request_id", requestID)
			r = r.WithContext(ctx)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			entry := logger.WithContext(ctx).WithFields(map[string]interface{}{
				"http_method":        r.Method,
				"http_path":          r.URL.Path,
				"http_query":         r.URL.RawQuery,
				"http_remote_addr":   clientIP(r),
				"http_user_agent":    r.UserAgent(),
				"http_status":        rw.statusCode,
				"http_response_size": rw.size,
				"duration_ms":        float64(duration.Nanoseconds()) / 1e6,
			})

			message := fmt.Sprintf("HTTP %s %s completed", r.Method, r.URL.Path)
			switch {
			case rw.statusCode >= 500:
				entry.Error(message)
			case rw.statusCode >= 400:
				entry.Warn(message)
			default:
				entry.Info(message)
			}
		})
	}
}

// shouldSkip determines if a path should be skipped from logging
func shouldSkip(skipPaths []string, path string) bool {
	for _, skipPath := range skipPaths {
		if path == skipPath || strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// requestIDFrom extracts the request ID set by upstream middleware, or
// falls back to common correlation headers.
func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value("request_id").(string); ok && id != "" {
		return id
	}
	for _, header := range []string{"X-Request-ID", "X-Correlation-ID"} {
		if id := r.Header.Get(header); id != "" {
			return id
		}
	}
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}

// clientIP extracts the real client IP address
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

// Write captures response size
func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// WriteHeader captures status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Hijack implements http.Hijacker
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("ResponseWriter does not implement http.Hijacker")
}

// Flush implements http.Flusher
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
