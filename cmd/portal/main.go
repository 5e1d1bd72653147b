package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"andaman_vendor/internal/adapters/auth"
	server "andaman_vendor/internal/adapters/http_server"
	"andaman_vendor/internal/adapters/listingsapi"
	"andaman_vendor/internal/adapters/observability"
	"andaman_vendor/internal/adapters/portal"
	"andaman_vendor/internal/app"
	"andaman_vendor/internal/shared"
)

func main() {
	flags := pflag.NewFlagSet("portal", pflag.ExitOnError)
	envFile := flags.String("env-file", "", "dotenv file to load before reading the environment")
	addr := flags.String("addr", "", "listen address (overrides PORTAL_ADDR)")
	apiURL := flags.String("api", "", "listings API base URL (overrides LISTINGS_API_URL)")
	_ = flags.Parse(os.Args[1:])

	shared.LoadEnvFile(*envFile)
	cfg := shared.Load()
	if *addr != "" {
		cfg.PortalAddr = *addr
	}
	if *apiURL != "" {
		cfg.ListingsAPIURL = *apiURL
	}

	log.Logger = observability.NewLogger(cfg.AppEnv, "portal", cfg.LogLevel)

	client, err := listingsapi.New(cfg.ListingsAPIURL, listingsapi.Options{Timeout: cfg.APITimeout, RPS: cfg.APIRPS})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize listings API client")
	}
	log.Info().Str("api", cfg.ListingsAPIURL).Dur("timeout", cfg.APITimeout).Msg("listings API client ready")

	handlers, err := portal.NewHandlers(
		app.NewEditor(client),
		app.NewSessionStore(cfg.EditSessionTTL),
		auth.NewTokens(cfg.JWTSecret),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load portal templates")
	}

	reg := observability.InitRegistry()
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	handlers.Mount(srv.Router())

	httpSrv := &http.Server{Addr: cfg.PortalAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.PortalAddr).Msg("vendor portal listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("vendor portal stopped")
}
