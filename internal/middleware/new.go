package middleware

import (
	"golang.org/x/time/rate"

	"smartfarm-assistant/pkg/log"
)

type Middleware struct {
	l        log.Logger
	apiToken string
	limiter  *rate.Limiter
}

// New builds the shared middleware set. An empty apiToken disables auth,
// a non-positive ratePerSec disables rate limiting.
func New(l log.Logger, apiToken string, ratePerSec float64, burst int) Middleware {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), burst)
	}
	return Middleware{
		l:        l,
		apiToken: apiToken,
		limiter:  limiter,
	}
}
