package main

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/semaphore"

	"andaman_vendor/internal/adapters/observability"
	redisad "andaman_vendor/internal/adapters/redis"
	"andaman_vendor/internal/app"
	"andaman_vendor/internal/shared"
	mysqlrepo "andaman_vendor/internal/storage/mysql"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	envFile := flags.String("env-file", "", "dotenv file to load before reading the environment")
	file := flags.StringP("file", "f", "seed.yaml", "YAML file with islands, vendors and hotels")
	workers := flags.IntP("workers", "w", 0, "concurrent hotel upserts (overrides SEED_WORKERS)")
	_ = flags.Parse(os.Args[1:])

	ctx := context.Background()
	shared.LoadEnvFile(*envFile)
	cfg := shared.Load()
	if *workers > 0 {
		cfg.SeedWorkers = *workers
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "seed", cfg.LogLevel)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("open seed file failed")
	}
	seed, err := app.ReadSeedFile(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read seed file failed")
	}
	log.Info().
		Int("islands", len(seed.Islands)).
		Int("vendors", len(seed.Vendors)).
		Int("hotels", len(seed.Hotels)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeding starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "listings:")
	defer cache.Close()
	svc := app.NewSeedService(mysqlrepo.New(db), cache)

	// 2) reference rows first; hotels point at them
	if err := svc.SeedReference(ctx, seed); err != nil {
		log.Fatal().Err(err).Msg("seeding reference data failed")
	}

	// 3) hotels, bounded by the semaphore
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, h := range seed.Hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h app.SeedHotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := svc.SeedHotel(ctx, h); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", h.ID).Err(err).Msg("hotel seed failed")
				return
			}
			log.Debug().Int64("id", h.ID).Msg("hotel seeded")
		}(h)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Error().Int32("failed", n).Msg("seeding completed with failures")
		os.Exit(1)
	}
	log.Info().Msg("seeding completed")
}
