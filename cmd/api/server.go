package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/config"
	"library-catalog/internal/devserver"
)

// Serve runs the in-memory catalog API until SIGINT/SIGTERM.
func Serve(cfg *config.Config) error {
	// ========================================
	// 1. BUILD SEEDED API
	// ========================================
	api, err := devserver.New(devserver.Options{
		JWTSecret:     cfg.JWT.Secret,
		TokenTTL:      time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute,
		BcryptCost:    bcrypt.DefaultCost,
		AdminEmail:    cfg.Server.AdminEmail,
		AdminPassword: cfg.Server.AdminPass,
	})
	if err != nil {
		return fmt.Errorf("build api: %w", err)
	}

	// ========================================
	// 2. CONFIGURE HTTP SERVER
	// ========================================
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        api.Router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 3. START SERVER (NON-BLOCKING)
	// ========================================
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", "http://localhost:"+port+"/api").
			Str("admin", cfg.Server.AdminEmail).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// ========================================
	// 4. GRACEFUL SHUTDOWN
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info().Msg("server exited gracefully")
	return nil
}
