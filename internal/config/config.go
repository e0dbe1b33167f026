package config

import (
	"os"
	"strconv"
	"time"

	"movein-app-go/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	Session     SessionConfig
	Seed        SeedConfig
	Google      GoogleConfig
	Push        PushConfig
	DB          DBConfig
}

type SessionConfig struct {
	Secret string
	MaxAge time.Duration
}

// SeedConfig describes the bootstrap user created when the store is empty.
type SeedConfig struct {
	Username string
	Password string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// AppURL is where the callback redirects after the token exchange.
	AppURL string
}

type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	SweepInterval   time.Duration
	DueHorizon      time.Duration
	DedupWindow     time.Duration
}

type DBConfig struct {
	// DSN selects the postgres backend when set; empty means in-memory.
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Load(log logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, err
		}
		log.Debug("config: no .env file found")
	}

	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		CORSOrigins: []string{getEnv("FRONTEND_URL", "http://localhost:5173")},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			MaxAge: getEnvDuration("SESSION_MAX_AGE", 30*24*time.Hour),
		},
		Seed: SeedConfig{
			Username: getEnv("SEED_USERNAME", "admin"),
			Password: getEnv("SEED_PASSWORD", ""),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
			AppURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Push: PushConfig{
			VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subject:         getEnv("VAPID_SUBJECT", "mailto:admin@localhost"),
			SweepInterval:   getEnvDuration("PUSH_SWEEP_INTERVAL", time.Hour),
			DueHorizon:      getEnvDuration("PUSH_DUE_HORIZON", 5*24*time.Hour),
			DedupWindow:     getEnvDuration("PUSH_DEDUP_WINDOW", 24*time.Hour),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
	}

	return cfg, nil
}

func (c GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c PushConfig) Enabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
