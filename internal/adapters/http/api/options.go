package api

import "github.com/okian/edgeboard/pkg/logger"

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets a custom logger for request error logging.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
