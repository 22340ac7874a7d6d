package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"farmstand/catalog"
	"farmstand/filepipeline"
	"farmstand/handlers"
	"farmstand/render"
	"farmstand/routes"
)

// notOrganic marks cards and product pages of records with organic=false.
var notOrganic = render.FlagRule{Field: "organic", Token: "NOT_ORGANIC", Value: "not-organic"}

func main() {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	if config.Debug() {
		log.Printf("[server] config: %+v", *config)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatalf("[server] %v", err)
	}
}

// run does all startup file work, then serves until ctx is done.
func run(ctx context.Context, config *Config) error {
	if config.Pipeline.Enabled {
		if err := filepipeline.Run(config.Pipeline.Config); err != nil {
			return fmt.Errorf("startup file pipeline: %w", err)
		}
	}

	cat, err := catalog.Load(catalog.Paths{DataFile: config.DataFile, TemplateDir: config.TemplateDir})
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	ln, err := net.Listen("tcp", config.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", config.Addr(), err)
	}
	return serve(ctx, newServer(config, cat), ln, config)
}

func newHandler(cat *catalog.Catalog) http.Handler {
	pages := handlers.NewPages(cat, render.New(notOrganic))
	return loggingMiddleware(recoveryMiddleware(routes.NewRouter(pages)))
}

func newServer(config *Config, cat *catalog.Catalog) *http.Server {
	return &http.Server{
		Addr:         config.Addr(),
		Handler:      newHandler(cat),
		ReadTimeout:  seconds(config.ReadTimeout),
		WriteTimeout: seconds(config.WriteTimeout),
	}
}

// serve runs srv on ln and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, config *Config) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on http://%s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), seconds(config.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
