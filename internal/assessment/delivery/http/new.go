package http

import (
	"github.com/gin-gonic/gin"

	"assessment-planner/internal/assessment"
	pkgLog "assessment-planner/pkg/log"
)

// Handler exposes the assessment domain over HTTP.
type Handler interface {
	// Import handles POST /api/v1/assessments/import
	Import(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc assessment.UseCase
}

// New creates a new assessment HTTP handler.
func New(l pkgLog.Logger, uc assessment.UseCase) Handler {
	return &handler{l: l, uc: uc}
}
