package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	PortalAddr     string
	MetricsAddr    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	ListingsAPIURL string
	APITimeout     time.Duration
	APIRPS         int
	EditSessionTTL time.Duration
	CacheTTL       time.Duration
	SeedWorkers    int
}

// LoadEnvFile loads a dotenv file into the process environment. Variables
// already set win. A missing default .env is not an error.
func LoadEnvFile(path string) {
	if path == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg(".env could not be loaded")
		}
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("env file could not be loaded")
	}
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		PortalAddr:     env("PORTAL_ADDR", ":8081"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/andaman?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		JWTSecret:      env("JWT_SECRET", ""),
		ListingsAPIURL: env("LISTINGS_API_URL", "http://localhost:8080/api"),
		APITimeout:     time.Duration(atoi("LISTINGS_API_TIMEOUT_SECONDS", 10)) * time.Second,
		APIRPS:         atoi("LISTINGS_API_RPS", 20),
		EditSessionTTL: time.Duration(atoi("EDIT_SESSION_TTL_SECONDS", 1800)) * time.Second,
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SeedWorkers:    atoi("SEED_WORKERS", 8),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
