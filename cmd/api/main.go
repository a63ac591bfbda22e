package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spots_backend/internal/events"
	"spots_backend/internal/geo"
	apphttp "spots_backend/internal/http"
	"spots_backend/internal/http/router"
	"spots_backend/internal/imports"
	"spots_backend/internal/notification"
	"spots_backend/platform/config"
	"spots_backend/platform/logger"
	"spots_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing).
	// No Sender is wired here: delivery is an external collaborator.
	notificationModule := notification.New(cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	geoModule := geo.NewModule(cfg, log)

	importsModule := imports.NewModule(cfg, eventBus, val, log)
	importsModule.SetReverseGeocoder(geoModule.Geocoder())
	// Provider lookups (Google Places etc.) are injected here when the
	// deployment carries credentials; without them the named providers
	// answer "provider not configured" and the frontend offers manual entry.

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			importsModule,
			geoModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(app),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
