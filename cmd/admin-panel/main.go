// Package main — точка входа панели администрирования.
//
// Порядок инициализации: конфигурация, логирование, миграции БД,
// подключение к PostgreSQL, репозитории, сервисы, bootstrap
// superadmin, HTTP-обработчики и сервер.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/adminpanel/internal/api/handlers"
	"github.com/bigkaa/adminpanel/internal/api/middleware"
	"github.com/bigkaa/adminpanel/internal/config"
	"github.com/bigkaa/adminpanel/internal/database"
	"github.com/bigkaa/adminpanel/internal/repository"
	"github.com/bigkaa/adminpanel/internal/server"
	"github.com/bigkaa/adminpanel/internal/service"
	"github.com/bigkaa/adminpanel/internal/token"
	uihandlers "github.com/bigkaa/adminpanel/internal/ui/handlers"
)

func main() {
	ctx := context.Background()

	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка структурированного логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Панель администрирования запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("environment", cfg.Env),
	)

	// 3. Применение миграций схемы БД
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка применения миграций", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL.
	// Handle подключается лениво, но при старте пул поднимаем
	// сразу: без БД панель бесполезна.
	dbHandle := database.NewHandle(cfg, logger)
	defer dbHandle.Close()

	pool, err := dbHandle.Pool(ctx)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4.1. *sql.DB поверх того же пула — его требует dephealth.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Репозитории
	accountRepo := repository.NewAdminAccountRepository(pool)

	// 6. Кодек сессионных токенов и сервисы
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("Ошибка инициализации кодека токенов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authService := service.NewAuthService(accountRepo, codec, logger)
	accountService := service.NewAdminAccountService(accountRepo, logger)

	// 7. Bootstrap superadmin (однократно, идемпотентно)
	if cfg.SeedSuperadmin {
		err := service.EnsureSuperadmin(ctx, accountRepo, service.SeedInput{
			Username: cfg.SeedUsername,
			Email:    cfg.SeedEmail,
			Password: cfg.SeedPassword,
		}, logger)
		if err != nil {
			logger.Error("Ошибка создания учётной записи superadmin", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// 8. HTTP-обработчики
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(dbHandle))
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction(), logger)
	accountsHandler := handlers.NewAdminAccountsHandler(accountService, logger)

	openapiHandler, err := handlers.NewOpenAPIHandler()
	if err != nil {
		logger.Error("Ошибка генерации OpenAPI-описания", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var pagesHandler *uihandlers.PagesHandler
	if cfg.UIEnabled {
		pagesHandler = uihandlers.NewPagesHandler(logger)
	}

	// 9. Middleware аутентификации
	authorizer := middleware.NewAuthorizer(codec, logger)

	// 10. Мониторинг зависимостей (dephealth).
	// Ошибка инициализации не фатальна: панель работает и без метрик
	// зависимостей.
	var dephealthService *service.DephealthService
	dephealthService, err = service.NewDephealthService(
		"admin-panel",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.DephealthCheckInterval,
		logger,
	)
	if err != nil {
		logger.Warn("Dephealth не инициализирован, мониторинг зависимостей отключён",
			slog.String("error", err.Error()))
		dephealthService = nil
	} else {
		if err := dephealthService.Start(ctx); err != nil {
			logger.Warn("Dephealth не запущен, мониторинг зависимостей отключён",
				slog.String("error", err.Error()))
			dephealthService = nil
		} else {
			logger.Info("Dephealth запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.Duration("check_interval", cfg.DephealthCheckInterval),
			)
		}
	}

	// 11. HTTP-сервер
	srv := server.New(cfg, logger, server.Handlers{
		Auth:     authHandler,
		Accounts: accountsHandler,
		Health:   healthHandler,
		OpenAPI:  openapiHandler,
		Pages:    pagesHandler,
	}, authorizer)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка работы сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 12. Остановка фоновых задач
	if dephealthService != nil {
		dephealthService.Stop()
	}

	logger.Info("Панель администрирования остановлена")
}
