// Пакет config — загрузка и валидация конфигурации панели
// администрирования из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Окружения приложения.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config содержит все параметры конфигурации панели администрирования.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Окружение (development, production). В production session cookie
	// выставляется с флагом Secure.
	Env string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Сессии ---

	// Секрет подписи session token (HS256). Обязательный: приложение
	// не стартует без него, небезопасного значения по умолчанию нет.
	JWTSecret string
	// Время жизни session token
	TokenTTL time.Duration

	// --- Bootstrap ---

	// Создавать ли учётную запись superadmin при старте, если её нет
	SeedSuperadmin bool
	// Имя пользователя для bootstrap superadmin
	SeedUsername string
	// Email для bootstrap superadmin
	SeedEmail string
	// Пароль для bootstrap superadmin (обязателен при SeedSuperadmin=true)
	SeedPassword string

	// --- UI ---

	// Раздавать ли встроенный dashboard (login + dashboard страницы)
	UIEnabled bool

	// --- CORS ---

	// Список разрешённых origins для CORS. Пустой список — CORS
	// отключён (dashboard раздаётся с того же origin, что и API).
	CORSOrigins []string

	// --- Мониторинг ---

	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration
	// Имя группы topologymetrics
	DephealthGroup string

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// IsProduction — работает ли приложение в production-окружении.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// AP_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("AP_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("AP_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("AP_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// AP_ENV — окружение (по умолчанию development)
	cfg.Env = getEnvDefault("AP_ENV", EnvDevelopment)
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return nil, fmt.Errorf("AP_ENV: недопустимое значение %q, допустимые: %s, %s",
			cfg.Env, EnvDevelopment, EnvProduction)
	}

	// AP_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("AP_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("AP_LOG_LEVEL: %w", err)
	}

	// AP_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("AP_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("AP_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// AP_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("AP_DB_HOST")
	if err != nil {
		return nil, err
	}

	// AP_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("AP_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("AP_DB_PORT: %w", err)
	}

	// AP_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("AP_DB_NAME")
	if err != nil {
		return nil, err
	}

	// AP_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("AP_DB_USER")
	if err != nil {
		return nil, err
	}

	// AP_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("AP_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// AP_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("AP_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("AP_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Сессии ---

	// AP_JWT_SECRET — обязательный. Отсутствие секрета — фатальная ошибка
	// конфигурации: токены без подписи недопустимы.
	cfg.JWTSecret, err = getEnvRequired("AP_JWT_SECRET")
	if err != nil {
		return nil, err
	}

	// AP_TOKEN_TTL — время жизни session token (по умолчанию 24h)
	cfg.TokenTTL, err = getEnvDuration("AP_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("AP_TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL < time.Minute {
		return nil, fmt.Errorf("AP_TOKEN_TTL: значение %s меньше минимального (1m)", cfg.TokenTTL)
	}

	// --- Bootstrap ---

	// AP_SEED_SUPERADMIN — создавать superadmin при старте (по умолчанию false)
	cfg.SeedSuperadmin, err = getEnvBool("AP_SEED_SUPERADMIN", false)
	if err != nil {
		return nil, fmt.Errorf("AP_SEED_SUPERADMIN: %w", err)
	}

	cfg.SeedUsername = getEnvDefault("AP_SEED_USERNAME", "superadmin")
	cfg.SeedEmail = getEnvDefault("AP_SEED_EMAIL", "superadmin@example.com")
	cfg.SeedPassword = getEnvDefault("AP_SEED_PASSWORD", "")

	if cfg.SeedSuperadmin && cfg.SeedPassword == "" {
		return nil, fmt.Errorf("AP_SEED_PASSWORD: обязателен при AP_SEED_SUPERADMIN=true")
	}

	// --- UI ---

	// AP_UI_ENABLED — раздавать встроенный dashboard (по умолчанию true)
	cfg.UIEnabled, err = getEnvBool("AP_UI_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("AP_UI_ENABLED: %w", err)
	}

	// --- CORS ---

	// AP_CORS_ORIGINS — список разрешённых origins через запятую
	// (по умолчанию пусто: CORS отключён)
	if raw := getEnvDefault("AP_CORS_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	// --- Мониторинг ---

	// AP_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("AP_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AP_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// AP_DEPHEALTH_GROUP — имя группы topologymetrics (по умолчанию admin-panel)
	cfg.DephealthGroup = getEnvDefault("AP_DEPHEALTH_GROUP", "admin-panel")

	// --- Graceful shutdown ---

	// AP_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("AP_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AP_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL
// (для topologymetrics и golang-migrate).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
