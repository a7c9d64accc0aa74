package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"AP_DB_HOST":     "localhost",
		"AP_DB_NAME":     "adminpanel",
		"AP_DB_USER":     "adminpanel",
		"AP_DB_PASSWORD": "secret",
		"AP_JWT_SECRET":  "test-signing-secret",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	// Проверяем значения по умолчанию
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидается 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, ожидается %q", cfg.Env, EnvDevelopment)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true для development-окружения")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s, ожидается 24h", cfg.TokenTTL)
	}
	if cfg.SeedSuperadmin {
		t.Error("SeedSuperadmin = true по умолчанию, ожидается false")
	}
	if !cfg.UIEnabled {
		t.Error("UIEnabled = false по умолчанию, ожидается true")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %s, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	envs := minimalEnvs()
	delete(envs, "AP_JWT_SECRET")
	setEnvs(t, envs)

	// Старт без секрета подписи запрещён: никакого небезопасного
	// значения по умолчанию.
	if _, err := Load(); err == nil {
		t.Fatal("Load() без AP_JWT_SECRET должен возвращать ошибку")
	}
}

func TestLoad_MissingDBHost(t *testing.T) {
	envs := minimalEnvs()
	delete(envs, "AP_DB_HOST")
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() без AP_DB_HOST должен возвращать ошибку")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	envs := minimalEnvs()
	envs["AP_ENV"] = "staging"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() с AP_ENV=staging должен возвращать ошибку")
	}
}

func TestLoad_ProductionEnv(t *testing.T) {
	envs := minimalEnvs()
	envs["AP_ENV"] = "production"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false для production-окружения")
	}
}

func TestLoad_SeedRequiresPassword(t *testing.T) {
	envs := minimalEnvs()
	envs["AP_SEED_SUPERADMIN"] = "true"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() с AP_SEED_SUPERADMIN=true без пароля должен возвращать ошибку")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["AP_PORT"] = "9090"
	envs["AP_TOKEN_TTL"] = "1h"
	envs["AP_LOG_LEVEL"] = "debug"
	envs["AP_LOG_FORMAT"] = "text"
	envs["AP_UI_ENABLED"] = "false"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, ожидается 9090", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %s, ожидается 1h", cfg.TokenTTL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.UIEnabled {
		t.Error("UIEnabled = true, ожидается false")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	envs := minimalEnvs()
	envs["AP_CORS_ORIGINS"] = "https://panel.example.com, https://staging.example.com ,"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	want := []string{"https://panel.example.com", "https://staging.example.com"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, ожидается %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, ожидается %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
}

func TestLoad_CORSDisabledByDefault(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v, ожидается пустой список", cfg.CORSOrigins)
	}
}

func TestLoad_InvalidTokenTTL(t *testing.T) {
	envs := minimalEnvs()
	envs["AP_TOKEN_TTL"] = "10s"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() с AP_TOKEN_TTL меньше минуты должен возвращать ошибку")
	}
}

func TestDatabaseDSN(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	want := "host=localhost port=5432 dbname=adminpanel user=adminpanel password=secret sslmode=disable"
	if got := cfg.DatabaseDSN(); got != want {
		t.Errorf("DatabaseDSN() = %q, ожидается %q", got, want)
	}
}
