package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
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

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "hockey-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "hockey-league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_StatsFeedRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("STATSFEED_ENABLED", "true")
	t.Setenv("STATSFEED_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STATSFEED_ENABLED=true without STATSFEED_TOKEN")
	}
}

func TestLoad_StatsFeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("STATSFEED_ENABLED", "true")
	t.Setenv("STATSFEED_TOKEN", "token-123")
	t.Setenv("STATSFEED_TIMEOUT", "7s")
	t.Setenv("STATSFEED_MAX_RETRIES", "2")
	t.Setenv("STATSFEED_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.StatsFeedEnabled {
		t.Fatalf("expected StatsFeedEnabled=true")
	}
	if cfg.StatsFeedToken != "token-123" {
		t.Fatalf("unexpected StatsFeedToken")
	}
	if cfg.StatsFeedTimeout != 7*time.Second {
		t.Fatalf("unexpected StatsFeedTimeout: %s", cfg.StatsFeedTimeout)
	}
	if cfg.StatsFeedMaxRetries != 2 {
		t.Fatalf("unexpected StatsFeedMaxRetries: %d", cfg.StatsFeedMaxRetries)
	}
	if cfg.StatsFeedCircuitFailureCount != 3 {
		t.Fatalf("unexpected StatsFeedCircuitFailureCount: %d", cfg.StatsFeedCircuitFailureCount)
	}
}

func TestLoad_QStashRequiredFieldsWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qs-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.internal.example")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without INTERNAL_JOB_TOKEN")
	}
}

func TestLoad_GoalieStartMinimumValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default", func(t *testing.T) {
		t.Setenv("GOALIE_START_MINIMUM", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.GoalieStartMinimum != 3 {
			t.Fatalf("expected default goalie start minimum 3, got %d", cfg.GoalieStartMinimum)
		}
	})

	t.Run("zero rejected", func(t *testing.T) {
		t.Setenv("GOALIE_START_MINIMUM", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for GOALIE_START_MINIMUM=0")
		}
	})
}

func TestLoad_JobTimezoneValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("JOB_TIMEZONE", "Not/AZone")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid JOB_TIMEZONE")
	}
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_HTTPTimeoutsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_READ_TIMEOUT", "12s")
	t.Setenv("APP_WRITE_TIMEOUT", "21s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ReadTimeout != 12*time.Second {
		t.Fatalf("unexpected ReadTimeout: %s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 21*time.Second {
		t.Fatalf("unexpected WriteTimeout: %s", cfg.WriteTimeout)
	}
}

func TestLoad_BackfillWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BACKFILL_WORKERS", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative BACKFILL_WORKERS")
	}
}
