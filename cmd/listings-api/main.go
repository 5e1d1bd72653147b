package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"andaman_vendor/internal/adapters/auth"
	server "andaman_vendor/internal/adapters/http_server"
	"andaman_vendor/internal/adapters/observability"
	redisad "andaman_vendor/internal/adapters/redis"
	"andaman_vendor/internal/app"
	"andaman_vendor/internal/shared"
	mysqlrepo "andaman_vendor/internal/storage/mysql"
)

func main() {
	flags := pflag.NewFlagSet("listings-api", pflag.ExitOnError)
	envFile := flags.String("env-file", "", "dotenv file to load before reading the environment")
	addr := flags.String("addr", "", "listen address (overrides HTTP_ADDR)")
	metricsAddr := flags.String("metrics-addr", "", "separate metrics listener (overrides METRICS_ADDR)")
	_ = flags.Parse(os.Args[1:])

	shared.LoadEnvFile(*envFile)
	cfg := shared.Load()
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "listings-api", cfg.LogLevel)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "listings:")
	defer cache.Close()
	if err := cache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; reads will fall through to MySQL")
	}
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	u := app.NewUpdateService(q, repo, cache)

	// http
	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, U: u, Tokens: auth.NewTokens(cfg.JWTSecret)})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listings API listening")
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
	log.Info().Msg("listings API stopped")
}
