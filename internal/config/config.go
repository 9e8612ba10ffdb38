// Package config loads application configuration from an optional YAML file
// with environment variable overrides, and validates it before the server
// starts. The JWT signing secret is deliberately config-only: there is no
// compiled-in default, and placeholder values are rejected at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither file nor environment say otherwise.
const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = "8080"
	DefaultDBPath   = "watcher.db"
	DefaultTokenTTL = 30 * time.Minute
)

// insecureSecrets are well-known placeholders that must never reach
// production. Startup fails rather than signing tokens with one of these.
var insecureSecrets = map[string]struct{}{
	"your-secret-key": {},
	"changeme":        {},
	"change-me":       {},
	"secret":          {},
	"dev":             {},
}

const minSecretLen = 16

// Config is the resolved application configuration.
type Config struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	DBPath         string        `yaml:"db_path"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"-"`
	AllowedOrigins []string      `yaml:"allowed_origins"`

	// Raw string value for YAML unmarshaling.
	TokenTTLRaw string `yaml:"token_ttl"`
}

// Load reads the optional config file, applies environment overrides and
// defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := resolveConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if cfg.TokenTTLRaw != "" {
		ttl, err := time.ParseDuration(cfg.TokenTTLRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid token_ttl %q: %w", cfg.TokenTTLRaw, err)
		}
		cfg.TokenTTL = ttl
	} else {
		cfg.TokenTTL = DefaultTokenTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that must not reach a running server.
func (c *Config) Validate() error {
	secret := strings.TrimSpace(c.JWTSecret)
	if secret == "" {
		return fmt.Errorf("jwt_secret is required (set WATCHER_JWT_SECRET)")
	}
	if _, bad := insecureSecrets[strings.ToLower(secret)]; bad {
		return fmt.Errorf("jwt_secret %q is a well-known placeholder, refusing to start", secret)
	}
	if len(secret) < minSecretLen {
		return fmt.Errorf("jwt_secret must be at least %d characters", minSecretLen)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("WATCHER_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WATCHER_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("WATCHER_TOKEN_TTL"); v != "" {
		cfg.TokenTTLRaw = v
	}
	if v := os.Getenv("WATCHER_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, o := range origins {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if len(cfg.AllowedOrigins) == 0 {
		// Dev UI origins.
		cfg.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}
}

func resolveConfigPath() string {
	if explicit := strings.TrimSpace(os.Getenv("WATCHER_CONFIG_FILE")); explicit != "" {
		return explicit
	}

	candidates := []string{
		"config/watcher.yaml",
		"/etc/llm-answer-watcher/watcher.yaml",
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, ".config", "llm-answer-watcher", "watcher.yaml"),
		)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
