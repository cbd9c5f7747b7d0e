package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"assessment-planner/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "running in production mode")
	} else {
		srv.l.Infof(ctx, "running in %s mode", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.assessmentHandler == nil {
		srv.l.Infof(ctx, "assessment handler not configured, skipping import route")
		return
	}

	api := srv.gin.Group("/api/v1")
	api.POST("/assessments/import", srv.mw.RateLimit(srv.importRatePerMin), srv.assessmentHandler.Import)
	srv.l.Infof(ctx, "import route registered at POST /api/v1/assessments/import")
}
