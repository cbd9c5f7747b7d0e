package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	assessmentHTTP "assessment-planner/internal/assessment/delivery/http"
	"assessment-planner/internal/middleware"
	"assessment-planner/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	assessmentHandler assessmentHTTP.Handler
	mw                middleware.Middleware
	importRatePerMin  int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	AssessmentHandler assessmentHTTP.Handler
	ImportRatePerMin  int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.Default(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		assessmentHandler: cfg.AssessmentHandler,
		mw:                middleware.New(logger),
		importRatePerMin:  cfg.ImportRatePerMin,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
