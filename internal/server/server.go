// Пакет server — HTTP-сервер панели администрирования с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на ingress.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bigkaa/adminpanel/internal/api/handlers"
	"github.com/bigkaa/adminpanel/internal/api/middleware"
	"github.com/bigkaa/adminpanel/internal/config"
	uihandlers "github.com/bigkaa/adminpanel/internal/ui/handlers"
	uimw "github.com/bigkaa/adminpanel/internal/ui/middleware"
	"github.com/bigkaa/adminpanel/internal/ui/static"
)

// Handlers — набор обработчиков, монтируемых на роутер.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Accounts *handlers.AdminAccountsHandler
	Health   *handlers.HealthHandler
	OpenAPI  *handlers.OpenAPIHandler
	Pages    *uihandlers.PagesHandler
}

// Server — HTTP-сервер панели администрирования.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными маршрутами и middleware.
// authorizer проверяет сессионный токен на защищённых /api/* маршрутах.
func New(cfg *config.Config, logger *slog.Logger, h Handlers, authorizer *middleware.Authorizer) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.RealIP)

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Публичные endpoints: health и metrics опрашиваются Kubernetes
	// и Prometheus напрямую, без аутентификации.
	router.Get("/health/live", h.Health.HealthLive)
	router.Get("/health/ready", h.Health.HealthReady)
	router.Get("/metrics", h.Health.GetMetrics)
	router.Get("/openapi.json", h.OpenAPI.Serve)
	router.Get("/api/health", h.Health.APIHealth)

	// Аутентификация: login/logout публичны.
	router.Post("/api/auth/login", h.Auth.Login)
	router.Post("/api/auth/logout", h.Auth.Logout)

	// Защищённые API: сессионный токен обязателен,
	// разграничение ролей выполняют сами обработчики.
	router.Group(func(r chi.Router) {
		r.Use(authorizer.Middleware())
		r.Get("/api/auth/me", h.Auth.Me)
		r.Post("/api/admin/create", h.Accounts.Create)
		r.Get("/api/admin/list", h.Accounts.List)
		r.Put("/api/admin/update", h.Accounts.Update)
		r.Put("/api/admin/toggle-status", h.Accounts.ToggleStatus)
		r.Delete("/api/admin/delete", h.Accounts.Delete)
	})

	// Встроенный dashboard: статика публична, страницы за маршрутным шлюзом.
	if cfg.UIEnabled && h.Pages != nil {
		router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))
		router.Group(func(r chi.Router) {
			r.Use(uimw.Gate())
			r.Get("/", h.Pages.Root)
			r.Get(uimw.LoginPath, h.Pages.Login)
			r.Get(uimw.DashboardPath, h.Pages.Dashboard)
		})
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Handler возвращает корневой http.Handler сервера. Используется в тестах.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
