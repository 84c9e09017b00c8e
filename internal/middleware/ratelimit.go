package middleware

import (
	"log"
	"net/http"

	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit throttles a route per client IP. formatted is ulule notation,
// e.g. "10-M" for ten requests per minute. The store is in-memory; a
// single-instance deployment needs nothing more.
func RateLimit(formatted string) func(http.Handler) http.Handler {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Fatalf("invalid rate limit %q: %v", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)
	mw := mhttp.NewMiddleware(instance)

	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
