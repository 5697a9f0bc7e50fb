package config

import (
	"testing"
	"time"

	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "fixtures-dashboard-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.RefreshInterval != 60*time.Second {
		t.Fatalf("unexpected RefreshInterval: %s", cfg.RefreshInterval)
	}
	if cfg.FixturesDir != "./fixtures" {
		t.Fatalf("unexpected FixturesDir: %q", cfg.FixturesDir)
	}
	if cfg.FixturesBaseURL != "" {
		t.Fatalf("unexpected FixturesBaseURL: %q", cfg.FixturesBaseURL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RefreshIntervalValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REFRESH_INTERVAL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive REFRESH_INTERVAL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_FixturesSourceConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIXTURES_BASE_URL", "https://fixtures.example.com/schedules")
	t.Setenv("FIXTURES_TIMEOUT", "5s")
	t.Setenv("FIXTURES_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FixturesBaseURL != "https://fixtures.example.com/schedules" {
		t.Fatalf("unexpected FixturesBaseURL: %q", cfg.FixturesBaseURL)
	}
	if cfg.FixturesTimeout != 5*time.Second {
		t.Fatalf("unexpected FixturesTimeout: %s", cfg.FixturesTimeout)
	}
	if cfg.FixturesCircuitFailureCount != 3 {
		t.Fatalf("unexpected FixturesCircuitFailureCount: %d", cfg.FixturesCircuitFailureCount)
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSCannotBeEmpty(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty CORS_ALLOWED_ORIGINS")
	}
}
