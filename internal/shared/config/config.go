package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration.
type Config struct {
	Port             string `koanf:"port"`
	Env              string `koanf:"env"`
	LogLevel         string `koanf:"log_level"`
	DatabaseURL      string `koanf:"database_url"`
	CORSAllowOrigins string `koanf:"cors_allow_origins"`

	// Single-user credentials; an empty AuthUser leaves dev environments open.
	AuthUser     string `koanf:"auth_user"`
	AuthPassword string `koanf:"auth_password"`
	JWTSecret    string `koanf:"jwt_secret"`

	GoogleClientID     string `koanf:"google_client_id"`
	GoogleClientSecret string `koanf:"google_client_secret"`
	GoogleRedirectURL  string `koanf:"google_redirect_url"`
	AuthAllowedEmail   string `koanf:"auth_allowed_email"`
	UIRedirectURL      string `koanf:"ui_redirect_url"`

	NotionToken string `koanf:"notion_token"`
	NotionDBID  string `koanf:"notion_db_id"`

	ObjectStoreType string `koanf:"object_store"`
	LocalStoreDir   string `koanf:"local_store_dir"`
	AWSRegion       string `koanf:"aws_region"`
	S3Bucket        string `koanf:"s3_bucket"`
	S3Prefix        string `koanf:"s3_prefix"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Port:             "8080",
		Env:              "dev",
		LogLevel:         "info",
		CORSAllowOrigins: "http://localhost:3000",
		ObjectStoreType:  "local",
		LocalStoreDir:    "./data",
		S3Prefix:         "jobtracker/",
	}
}

// Load builds a Config by layering defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (highest precedence). Local .env
// files are read first, best-effort, for dev convenience.
func Load() (Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they never blank out a default.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)

	if cfg.Env == "production" {
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, errors.New("DATABASE_URL is required in production")
		}
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return Config{}, errors.New("JWT_SECRET is required in production")
		}
	}
	return cfg, nil
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	return splitAndTrim(c.CORSAllowOrigins)
}

// IsDevLike reports whether in-memory fallbacks and open auth are acceptable.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
