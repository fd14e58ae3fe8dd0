package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dfryer1193/bghfeed/internal/app"
	"github.com/dfryer1193/bghfeed/internal/rest"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()
	app.ConfigureLogging(os.Stderr)

	feedApp, err := app.New(app.NewConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize feed services")
	}
	defer func() {
		if err := feedApp.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close post cache")
		}
	}()

	handler := rest.NewFeedHandler(feedApp.Feed, feedApp.Synchronizer, feedApp.Categories, feedApp.Details)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           rest.NewRouter(handler, allowedOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server")
		return
	}

	log.Info().Msg("Server stopped")
}

// allowedOrigins reads CORS_ALLOWED_ORIGINS as a comma separated list.
func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
