package middleware

import (
	pkgLog "assessment-planner/pkg/log"
)

// Middleware holds shared middleware dependencies.
type Middleware struct {
	l pkgLog.Logger
}

// New creates the middleware set.
func New(l pkgLog.Logger) Middleware {
	return Middleware{l: l}
}
