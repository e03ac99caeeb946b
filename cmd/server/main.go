/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the savings-engine HTTP server. Captures the boot
  instant (used by the performance endpoint), wires the handler and router,
  and handles graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Capture boot time and create the API handler
  3. Configure the HTTP router
  4. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 5477)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

  The pipeline holds no cross-request state, so there is nothing to flush:
  any in-flight request either completes or is abandoned whole. Requests
  are never cancelled mid-pipeline.

ENVIRONMENT:
  No environment variables. All config via flags.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/warp/savings-engine/api"
)

func main() {
	port := flag.Int("port", 5477, "HTTP server port")
	flag.Parse()

	// Boot-time state for the performance endpoint, captured exactly once.
	startTime := time.Now()

	handler := api.NewHandler(startTime)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	// Start server in background
	go func() {
		log.Infof("savings engine listening on port %d", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
