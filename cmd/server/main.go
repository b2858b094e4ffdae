package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hellospa/backend/internal/common"
	"github.com/hellospa/backend/internal/config"
	appmiddleware "github.com/hellospa/backend/internal/middleware"
	"github.com/hellospa/backend/internal/respond"
	"github.com/hellospa/backend/internal/routes"
	"github.com/hellospa/backend/internal/spa"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := common.Sync(); err != nil {
			appmiddleware.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := common.Err(); err != nil {
		appmiddleware.LogError(context.Background(), "logger init error", err)
	}

	cfg := config.Load()
	router := newRouter(cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		appmiddleware.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		appmiddleware.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		appmiddleware.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appmiddleware.LogError(ctx, "server shutdown error", err)
	}
	appmiddleware.LogInfo(context.Background(), "server exited")
}

// newRouter assembles the middleware stack, the API routes and, when
// the static root is usable, the SPA catch-all.
func newRouter(staticDir string) chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		chimiddleware.RealIP,
		// Limit request body size; no endpoint accepts a body anyway.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		appmiddleware.RequestLogger(),
		appmiddleware.AccessLogger(),
		respond.Recoverer(),
	)

	apiCfg := huma.DefaultConfig("Hello SPA API", Version)
	apiCfg.DocsPath = "/api/docs"
	apiCfg.OpenAPIPath = "/api/openapi"
	apiCfg.SchemasPath = "/api/schemas"
	// The endpoint payloads are fixed documents; drop the default
	// transformer so responses stay the bare documented bodies without
	// an injected $schema link. DefaultConfig installs the schema-link
	// transformer through a CreateHook that runs inside humachi.New, so
	// the hooks must be cleared as well or the transformer is appended
	// back after this line.
	apiCfg.Transformers = nil
	apiCfg.CreateHooks = nil
	api := humachi.New(router, apiCfg)
	routes.Register(api)

	// The static root is probed exactly once. GET paths the API routes
	// do not claim go to the SPA fallback when the probe succeeds, and
	// to a plain 404 otherwise.
	handler, err := spa.New(staticDir, respond.MethodNotAllowedHandler())
	switch {
	case err == nil:
		router.NotFound(handler.ServeHTTP)
		appmiddleware.LogInfo(context.Background(), "static assets mounted", zap.String("dir", staticDir))
	case errors.Is(err, spa.ErrNoIndex):
		router.NotFound(respond.NotFoundHandler())
		appmiddleware.LogError(context.Background(), "static root misconfigured, running API-only", err, zap.String("dir", staticDir))
	case errors.Is(err, fs.ErrNotExist):
		router.NotFound(respond.NotFoundHandler())
		appmiddleware.LogInfo(context.Background(), "no static assets, running API-only", zap.String("dir", staticDir))
	default:
		router.NotFound(respond.NotFoundHandler())
		appmiddleware.LogError(context.Background(), "static root unusable, running API-only", err, zap.String("dir", staticDir))
	}
	return router
}
