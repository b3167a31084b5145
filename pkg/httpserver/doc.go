// Package httpserver runs the portal's HTTP server with graceful shutdown
// and exposes liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled or the process receives SIGINT/SIGTERM.
// In-flight requests get the configured shutdown timeout to finish.
package httpserver
