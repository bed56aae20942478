package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MetricsMiddleware wraps an HTTP handler to record request metrics.
//
// It captures:
//   - llmhub_requests_total (counter): method, status class, and route labels
//   - llmhub_request_duration_seconds (histogram): method and route labels
//   - llmhub_inflight_requests (gauge): requests currently being served
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InflightRequests.Inc()
		defer InflightRequests.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := RouteLabel(r.URL.Path)
		statusStr := strconv.Itoa(sw.status/100) + "xx"

		RequestsTotal.WithLabelValues(r.Method, statusStr, route).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RouteLabel maps a request path to a bounded label value. Registered API
// routes keep their path, unknown API paths become "other" and everything
// else outside the API becomes "static".
func RouteLabel(path string) string {
	switch {
	case path == "/api/chat", path == "/api/providers", path == "/api/instructions":
		return path
	case strings.HasPrefix(path, "/api/"):
		return "other"
	case path == "/healthz", path == "/metrics":
		return path
	case path == "/mcp", strings.HasPrefix(path, "/mcp/"):
		return "/mcp"
	default:
		return "static"
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush delegates to the underlying writer if it implements http.Flusher.
// The MCP endpoint streams through this wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
