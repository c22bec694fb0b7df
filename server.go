package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/openmoveio/posestream/internal/api"
	"github.com/openmoveio/posestream/internal/registry"
	"github.com/openmoveio/posestream/internal/session"
)

// serveAPI runs the runtime configuration API until ctx is cancelled.
func serveAPI(ctx context.Context, listen string, reg *registry.Registry, sessions []*session.Session) {
	srv := &http.Server{
		Addr:    listen,
		Handler: api.NewServer(reg, sessions).Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Runtime API listening on %s", listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("API server error: %v", err)
	}
}
