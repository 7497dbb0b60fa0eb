package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/adapters/productapi"
	"github.com/phenrril/resinwood/internal/adapters/session/memory"
)

type Config struct {
	Port   string
	AppEnv string

	DSN        string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SessionKey string
	SessionTTL time.Duration
	AdminToken string
	CORSOrigin string
	Currency   string

	ExternalAPIURL     string
	ExternalAPITimeout time.Duration
	ExternalAPIRetries int

	CatalogPath            string
	ImagesDir              string
	PersonalizationCharset string
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envDuration accepts Go durations ("45s") or a plain number of seconds.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// LoadConfig reads the environment. Call godotenv.Load first to pick up .env.
func LoadConfig() (Config, error) {
	c := Config{
		Port:       env("PORT", "8080"),
		AppEnv:     strings.ToLower(env("APP_ENV", "development")),
		DSN:        env("DB_DSN", ""),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", env("POSTGRES_USER", "postgres")),
		DBPassword: env("DB_PASSWORD", env("POSTGRES_PASSWORD", "postgres")),
		DBName:     env("DB_NAME", env("POSTGRES_DB", "resinwood")),
		DBSSLMode:  env("DB_SSLMODE", "disable"),

		SessionKey: env("SESSION_KEY", ""),
		AdminToken: env("ADMIN_TOKEN", ""),
		CORSOrigin: env("CORS_ORIGIN", ""),
		Currency:   strings.ToUpper(env("CURRENCY", "USD")),

		ExternalAPIURL: env("EXTERNAL_API_URL", "http://localhost:3001/api"),

		CatalogPath:            env("CATALOG_PATH", ""),
		ImagesDir:              env("IMAGES_DIR", "public/images"),
		PersonalizationCharset: env("PERSONALIZATION_CHARSET", "latin"),
	}
	var err error
	if c.SessionTTL, err = envDuration("SESSION_TTL", memory.DefaultTTL); err != nil {
		return c, err
	}
	if c.ExternalAPITimeout, err = envDuration("EXTERNAL_API_TIMEOUT", productapi.DefaultTimeout); err != nil {
		return c, err
	}
	c.ExternalAPIRetries = productapi.DefaultRetries
	if v := env("EXTERNAL_API_RETRIES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c, fmt.Errorf("EXTERNAL_API_RETRIES: %q is not a non-negative integer", v)
		}
		c.ExternalAPIRetries = n
	}
	if c.IsProduction() && c.SessionKey == "" {
		return c, fmt.Errorf("SESSION_KEY is required when APP_ENV=%s", c.AppEnv)
	}
	if c.SessionKey == "" {
		log.Warn().Msg("SESSION_KEY not set, using an insecure development key")
	}
	return c, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// DatabaseDSN returns DB_DSN when set, otherwise builds one from the parts.
func (c Config) DatabaseDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=" + c.DBSSLMode
}
