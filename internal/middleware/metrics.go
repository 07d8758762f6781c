package middleware

import (
	"net/http"
)

// HTTPRecorder receives per-request observations. Implemented by the
// metrics collector.
type HTTPRecorder interface {
	RecordHTTPRequest(method string, status int)
}

// Metrics returns middleware that records each request against the collector.
func Metrics(rec HTTPRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sr, r)
			rec.RecordHTTPRequest(r.Method, sr.status)
		})
	}
}
