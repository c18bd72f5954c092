package middleware

import (
	"net/http"
	"time"
)

type MetricsRecorder interface {
	Record(method, route string, status int, duration time.Duration)
}

// Metrics records every request under its chi route pattern. The pattern is
// read after the handler runs, once chi has resolved it.
func Metrics(rec MetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			rec.Record(r.Method, routePattern(r), recorder.status, time.Since(start))
		})
	}
}
