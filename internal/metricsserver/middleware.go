package metricsserver

import (
	"net/http"
	"time"
)

// LoggerMiddleware logs all requests (method, URL, and handle time) with the
// formatted logging function (logf).
func LoggerMiddleware(prefix string, logf func(f string, v ...any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := time.Now()
			next.ServeHTTP(w, r)
			logf("%s:\t%s\t%s\t%s", prefix, r.Method, r.URL.Path, time.Since(t))
		})
	}
}
