package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	// CredentialTTL bounds how long stored credentials outlive their last
	// save; the backend token's own expiry still applies first.
	CredentialTTL time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Backend = BackendConfig{
		BaseURL: req("BACKEND_BASE_URL"),
		Timeout: durationSeconds(opt("BACKEND_TIMEOUT_SECONDS"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Addr:          redisAddr(opt("REDIS_HOST"), opt("REDIS_PORT")),
		Password:      opt("REDIS_PASSWORD"),
		CredentialTTL: durationSeconds(opt("CREDENTIAL_TTL_SECONDS"), 24*time.Hour),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func redisAddr(host, port string) string {
	if host == "" {
		return ""
	}
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

func durationSeconds(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}
