package httpserver

import (
	"context"
	"fmt"
)

// Run wires the routes and blocks serving HTTP until the process exits.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}

	srv.l.Infof(context.Background(), "Listening on :%d", srv.port)
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
