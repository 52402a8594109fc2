package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/phenrril/brainbattle/internal/adapters/commerce/shopify"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	Shopify shopify.Config

	// CacheSize bounds the in-memory response cache. Zero uses the default.
	CacheSize int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DatabaseDSN is empty when no database is configured; the waitlist then
	// only logs signups.
	DatabaseDSN string
	AdminAPIKey string
	PublicDir   string
}

func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (c Config) Dev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

// LoadConfig reads the process environment. The commerce store domain and
// token are required unless SHOPIFY_ENDPOINT points somewhere explicit; the
// token is always required.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		Env:      strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Shopify: shopify.Config{
			Endpoint:    os.Getenv("SHOPIFY_ENDPOINT"),
			StoreDomain: os.Getenv("SHOPIFY_STORE_DOMAIN"),
			APIVersion:  getEnv("SHOPIFY_API_VERSION", shopify.DefaultAPIVersion),
			Token:       os.Getenv("SHOPIFY_STOREFRONT_API_TOKEN"),
			TokenHeader: getEnv("SHOPIFY_TOKEN_HEADER", shopify.DefaultTokenHeader),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
		PublicDir:     getEnv("PUBLIC_DIR", "public"),
	}
	if cfg.Shopify.Endpoint == "" && cfg.Shopify.StoreDomain == "" {
		return cfg, errors.New("SHOPIFY_STORE_DOMAIN is required")
	}
	if cfg.Shopify.Token == "" {
		return cfg, errors.New("SHOPIFY_STOREFRONT_API_TOKEN is required")
	}

	ttl, err := parseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return cfg, errors.New("CACHE_TTL: " + err.Error())
	}
	if ttl <= 0 {
		// 0 means "no cache"; the client treats a zero TTL as the default.
		ttl = -1
	}
	cfg.Shopify.CacheTTL = ttl
	if v := os.Getenv("SHOPIFY_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return cfg, errors.New("SHOPIFY_TIMEOUT: " + err.Error())
		}
		cfg.Shopify.Timeout = d
	}
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, errors.New("CACHE_SIZE must be a non-negative number")
		}
		cfg.CacheSize = n
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.New("REDIS_DB must be a number")
		}
		cfg.RedisDB = n
	}
	cfg.DatabaseDSN = databaseDSN()
	return cfg, nil
}

// databaseDSN honours DB_DSN, then builds one from DB_HOST and friends.
// Without either nothing is configured.
func databaseDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" {
		return dsn
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := getEnv("DB_PORT", "5432")
	user := os.Getenv("DB_USER")
	if user == "" {
		user = getEnv("POSTGRES_USER", "postgres")
	}
	pass := os.Getenv("DB_PASSWORD")
	if pass == "" {
		pass = getEnv("POSTGRES_PASSWORD", "postgres")
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = getEnv("POSTGRES_DB", "brainbattle")
	}
	ssl := getEnv("DB_SSLMODE", "disable")
	return "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
}

// parseDuration accepts Go durations ("90s") or plain seconds ("90").
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
