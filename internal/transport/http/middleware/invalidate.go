package middleware

import (
	"context"
	"net/http"
)

type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// InvalidateOnWrite drops cached keys after any successful write, so derived
// reports never outlive the records they were computed from.
func InvalidateOnWrite(cache Invalidator, keys ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			if recorder.status < http.StatusBadRequest {
				cache.Invalidate(context.WithoutCancel(r.Context()), keys...)
			}
		})
	}
}
