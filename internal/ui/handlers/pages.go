// Пакет handlers — раздача страниц dashboard панели администрирования.
// Страницы встроены в бинарник, серверного рендеринга нет: всё состояние
// dashboard загружается клиентским JS через /api/*.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/adminpanel/internal/ui/static"
)

// PagesHandler — обработчик HTML-страниц панели.
type PagesHandler struct {
	logger *slog.Logger
}

// NewPagesHandler создаёт обработчик страниц.
func NewPagesHandler(logger *slog.Logger) *PagesHandler {
	return &PagesHandler{
		logger: logger.With(slog.String("component", "ui_pages")),
	}
}

// Root — GET /. Перенаправляет на /dashboard; route gate дальше сам
// отправит неаутентифицированного посетителя на /login.
func (h *PagesHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Login — GET /login.
func (h *PagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, "login.html")
}

// Dashboard — GET /dashboard.
func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, "dashboard.html")
}

func (h *PagesHandler) servePage(w http.ResponseWriter, name string) {
	page, err := static.Page(name)
	if err != nil {
		h.logger.Error("Встроенная страница не найдена",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "страница не найдена", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
