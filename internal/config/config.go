package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no env file is requested explicitly. It may be absent.
const DefaultEnvFile = ".env"

// DB holds everything the connection provider needs to reach the store.
type DB struct {
	Driver       string // sqlite | mysql | postgres
	URL          string
	User         string
	Password     string
	MaxOpenConns int
	CreateSchema bool
}

type Config struct {
	Port           string
	DB             DB
	LogLevel       string
	LogFile        string
	LoginRateLimit int
	PasswordHash   string // sha256 | bcrypt
	RedactErrors   bool
}

// Load reads configuration from the process environment, falling back to the
// properties in envFile. An empty envFile means DefaultEnvFile, which is optional;
// any other file must exist.
func Load(envFile string) (Config, error) {
	props, err := readProps(envFile)
	if err != nil {
		return Config{}, err
	}
	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v := props[key]; v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port: get("PORT", "9090"),
		DB: DB{
			Driver:   strings.ToLower(get("DB_DRIVER", "sqlite")),
			URL:      get("DB_URL", ""),
			User:     get("DB_USER", ""),
			Password: get("DB_PASS", ""),
		},
		LogLevel:     strings.ToLower(get("LOG_LEVEL", "info")),
		LogFile:      get("LOG_FILE", ""),
		PasswordHash: strings.ToLower(get("PASSWORD_HASH", "sha256")),
	}

	if cfg.DB.MaxOpenConns, err = atoi("DB_MAX_OPEN_CONNS", get("DB_MAX_OPEN_CONNS", "10")); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateLimit, err = atoi("LOGIN_RATE_LIMIT", get("LOGIN_RATE_LIMIT", "5")); err != nil {
		return Config{}, err
	}
	if cfg.DB.CreateSchema, err = parseBool("DB_CREATE_SCHEMA", get("DB_CREATE_SCHEMA", "true")); err != nil {
		return Config{}, err
	}
	if cfg.RedactErrors, err = parseBool("REDACT_ERRORS", get("REDACT_ERRORS", "false")); err != nil {
		return Config{}, err
	}

	switch cfg.DB.Driver {
	case "sqlite":
		if cfg.DB.URL == "" {
			cfg.DB.URL = "inventory.db" // sqlite file in working dir
		}
	case "mysql", "postgres":
		if cfg.DB.URL == "" {
			return Config{}, fmt.Errorf("config: DB_URL is required for driver %q", cfg.DB.Driver)
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if cfg.PasswordHash != "sha256" && cfg.PasswordHash != "bcrypt" {
		return Config{}, fmt.Errorf("config: unsupported PASSWORD_HASH %q", cfg.PasswordHash)
	}
	return cfg, nil
}

func readProps(envFile string) (map[string]string, error) {
	optional := envFile == ""
	if optional {
		envFile = DefaultEnvFile
	}
	props, err := godotenv.Read(envFile)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}
	return props, nil
}

func atoi(key, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s must be a non-negative integer, got %q", key, s)
	}
	return n, nil
}

func parseBool(key, s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", key, s)
	}
	return b, nil
}
