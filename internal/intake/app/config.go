package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	defaultSQLiteDSN = "file:intake.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	defaultRedisDSN  = "redis://localhost:6379/0"
)

type Config struct {
	AdminUsername string        `yaml:"admin_username"`  // default: admin
	AdminPassword string        `yaml:"admin_password"`  // default: admin123
	TokenMode     string        `yaml:"auth_token_mode"` // jwt or legacy (default: jwt)
	TokenSecret   string        `yaml:"auth_token_secret"`
	TokenTTL      time.Duration `yaml:"auth_token_ttl"` // default: 1h
	Issuer        string        `yaml:"auth_issuer"`    // default: intake

	StoreDriver   string `yaml:"store_driver"`   // sqlite or redis (default: sqlite)
	StoreDSN      string `yaml:"store_dsn"`      // sqlite DSN or redis URL
	StoreDatabase string `yaml:"store_database"` // redis key prefix (default: client_form_db)

	CORSOrigins       []string      `yaml:"cors_origins"`        // default: *
	StatsRecentWindow time.Duration `yaml:"stats_recent_window"` // default: 168h

	Env                 string        `yaml:"env"`        // dev, staging, prod (default: dev)
	LogLevel            string        `yaml:"log_level"`  // default: info
	LogFormat           string        `yaml:"log_format"` // json or text (default: json)
	Port                int           `yaml:"port"`       // default: 8080
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"`
}

// LoadOptions name optional files read before the environment.
type LoadOptions struct {
	// EnvFile is loaded into the process environment if it exists. Variables
	// already set are not overwritten.
	EnvFile string

	// ConfigFile is a YAML document whose values sit between the defaults
	// and the environment.
	ConfigFile string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		AdminUsername:       "admin",
		AdminPassword:       "admin123",
		TokenMode:           string(service.TokenModeJWT),
		TokenTTL:            time.Hour,
		Issuer:              "intake",
		StoreDriver:         DriverSQLite,
		StoreDatabase:       "client_form_db",
		CORSOrigins:         []string{"*"},
		StatsRecentWindow:   service.DefaultRecentWindow,
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
	}
}

// LoadConfig resolves configuration: defaults, then the YAML file, then
// environment variables.
func LoadConfig(opts LoadOptions) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg := DefaultConfig()

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", opts.ConfigFile, err)
		}
	}

	cfg.AdminUsername = getEnvOrDefault("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminPassword = getEnvOrDefault("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.TokenMode = getEnvOrDefault("AUTH_TOKEN_MODE", cfg.TokenMode)
	cfg.TokenSecret = getEnvOrDefault("AUTH_TOKEN_SECRET", cfg.TokenSecret)
	cfg.TokenTTL = getEnvDurationOrDefault("AUTH_TOKEN_TTL", cfg.TokenTTL)
	cfg.Issuer = getEnvOrDefault("AUTH_ISSUER", cfg.Issuer)
	cfg.StoreDriver = strings.ToLower(getEnvOrDefault("STORE_DRIVER", cfg.StoreDriver))
	cfg.StoreDSN = getEnvOrDefault("STORE_DSN", cfg.StoreDSN)
	cfg.StoreDatabase = getEnvOrDefault("STORE_DATABASE", cfg.StoreDatabase)
	cfg.CORSOrigins = getEnvListOrDefault("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.StatsRecentWindow = getEnvDurationOrDefault("STATS_RECENT_WINDOW", cfg.StatsRecentWindow)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	if cfg.StoreDSN == "" {
		switch cfg.StoreDriver {
		case DriverRedis:
			cfg.StoreDSN = defaultRedisDSN
		default:
			cfg.StoreDSN = defaultSQLiteDSN
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	if _, err := service.ParseTokenMode(c.TokenMode); err != nil {
		return err
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
