package middleware

import (
	"scheduling-assistant/config"
	"scheduling-assistant/pkg/log"
)

// Middleware bundles the cross-cutting HTTP middlewares.
type Middleware struct {
	l      log.Logger
	config *config.Config
}

func New(l log.Logger, cfg *config.Config) Middleware {
	return Middleware{
		l:      l,
		config: cfg,
	}
}
