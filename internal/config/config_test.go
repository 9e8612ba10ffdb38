package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so host machine state cannot
// leak into the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT",
		"WATCHER_DB_PATH", "WATCHER_JWT_SECRET",
		"WATCHER_TOKEN_TTL", "WATCHER_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	// Point at an empty file so conventional config paths are ignored.
	emptyPath := filepath.Join(t.TempDir(), "watcher.yaml")
	if err := os.WriteFile(emptyPath, nil, 0o644); err != nil {
		t.Fatalf("write empty config: %v", err)
	}
	t.Setenv("WATCHER_CONFIG_FILE", emptyPath)
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("expected missing-secret error, got %v", err)
	}
}

func TestLoadRejectsPlaceholderSecrets(t *testing.T) {
	clearEnv(t)

	for _, secret := range []string{"your-secret-key", "CHANGEME", "secret"} {
		t.Setenv("WATCHER_JWT_SECRET", secret)
		if _, err := Load(); err == nil {
			t.Fatalf("expected placeholder secret %q to be rejected", secret)
		}
	}
}

func TestLoadRejectsShortSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCHER_JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected short secret to be rejected")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCHER_JWT_SECRET", "a-perfectly-reasonable-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != DefaultHost+":"+DefaultPort {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.DBPath != DefaultDBPath {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.TokenTTL != DefaultTokenTTL {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Fatal("expected default allowed origins")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCHER_JWT_SECRET", "a-perfectly-reasonable-secret")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("WATCHER_TOKEN_TTL", "2h")
	t.Setenv("WATCHER_ALLOWED_ORIGINS", "https://watcher.example.com, https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://watcher.example.com" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "watcher.yaml")
	content := `host: 10.0.0.5
port: "8443"
jwt_secret: file-provided-signing-secret
token_ttl: 45m
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WATCHER_CONFIG_FILE", cfgPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != "10.0.0.5:8443" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.TokenTTL != 45*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}

	// Environment still wins over the file.
	t.Setenv("PORT", "8080")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load with env override: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected env to override file, got %q", cfg.Port)
	}
}

func TestLoadInvalidTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCHER_JWT_SECRET", "a-perfectly-reasonable-secret")
	t.Setenv("WATCHER_TOKEN_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid ttl to be rejected")
	}
}
