package api

import (
	"github.com/okian/courtside/pkg/logger"
	"golang.org/x/time/rate"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScoreRateLimit limits POST /matches/{id}/scores to perSecond requests
// with the given burst. A non-positive perSecond disables the limit.
func WithScoreRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond <= 0 {
			s.scoreLimiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.scoreLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}
