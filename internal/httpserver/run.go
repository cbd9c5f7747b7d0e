package httpserver

import "fmt"

// Run registers all routes and starts serving. Blocks until the listener stops.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("failed to map handlers: %w", err)
	}
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
