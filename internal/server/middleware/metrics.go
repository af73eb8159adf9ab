package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fostergreatness/fgsite/internal/metrics"
)

// OtherRoute labels requests for paths outside the known route set.
const OtherRoute = "other"

// Metrics records request counts and latencies. Only the given routes get
// their own label so unknown paths cannot grow label cardinality.
func Metrics(routes []string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			route := r.URL.Path
			if _, ok := known[route]; !ok {
				route = OtherRoute
			}
			metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
