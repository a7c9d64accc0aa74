// admin_accounts.go — обработчики управления учётными записями администраторов.
// Чтение списка доступно любому аутентифицированному администратору,
// мутации — только superadmin.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/adminpanel/internal/api/errors"
	"github.com/bigkaa/adminpanel/internal/api/middleware"
	"github.com/bigkaa/adminpanel/internal/domain/model"
	"github.com/bigkaa/adminpanel/internal/domain/rbac"
	"github.com/bigkaa/adminpanel/internal/service"
)

// AdminAccountsHandler — обработчик endpoints /api/admin/*.
type AdminAccountsHandler struct {
	accounts *service.AdminAccountService
	logger   *slog.Logger
}

// NewAdminAccountsHandler создаёт обработчик управления учётными записями.
func NewAdminAccountsHandler(accounts *service.AdminAccountService, logger *slog.Logger) *AdminAccountsHandler {
	return &AdminAccountsHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "admin_accounts_handler")),
	}
}

// requireManager проверяет, что запрос выполняет superadmin.
// Возвращает false и пишет 403, если прав недостаточно.
func (h *AdminAccountsHandler) requireManager(w http.ResponseWriter, r *http.Request) bool {
	role := middleware.RoleFromContext(r.Context())
	if !rbac.CanManageAccounts(role) {
		apierrors.Forbidden(w, "недостаточно прав: требуется роль superadmin")
		return false
	}
	return true
}

// createRequest — тело запроса POST /api/admin/create.
type createRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Create — POST /api/admin/create. Только superadmin.
func (h *AdminAccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireManager(w, r) {
		return
	}

	var req createRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	acc, err := h.accounts.Create(r.Context(), service.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]model.AdminSummary{"admin": acc.Summary()})
}

// List — GET /api/admin/list. Доступен любому аутентифицированному администратору.
// Записи отсортированы по дате создания, новые первыми. Пароли не возвращаются.
func (h *AdminAccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	summaries := make([]model.AdminSummary, 0, len(accounts))
	for _, acc := range accounts {
		summaries = append(summaries, acc.Summary())
	}

	writeJSON(w, http.StatusOK, map[string][]model.AdminSummary{"admins": summaries})
}

// updateRequest — тело запроса PUT /api/admin/update.
// Отсутствующее поле не меняется.
type updateRequest struct {
	ID       string  `json:"id"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Update — PUT /api/admin/update. Только superadmin.
func (h *AdminAccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireManager(w, r) {
		return
	}

	var req updateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	acc, err := h.accounts.Update(r.Context(), req.ID, service.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.AdminSummary{"admin": acc.Summary()})
}

// toggleRequest — тело запроса PUT /api/admin/toggle-status.
type toggleRequest struct {
	ID string `json:"id"`
}

// toggleResponse — тело ответа переключения активности.
type toggleResponse struct {
	Message string             `json:"message"`
	Admin   model.AdminSummary `json:"admin"`
}

// ToggleStatus — PUT /api/admin/toggle-status. Только superadmin.
// Superadmin деактивировать нельзя.
func (h *AdminAccountsHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireManager(w, r) {
		return
	}

	var req toggleRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	acc, err := h.accounts.ToggleStatus(r.Context(), req.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	msg := "Учётная запись деактивирована"
	if acc.IsActive {
		msg = "Учётная запись активирована"
	}

	writeJSON(w, http.StatusOK, toggleResponse{Message: msg, Admin: acc.Summary()})
}

// Delete — DELETE /api/admin/delete?id=<uuid>. Только superadmin.
// Superadmin и собственную учётную запись удалить нельзя.
func (h *AdminAccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireManager(w, r) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		apierrors.BadRequest(w, "не указан параметр id")
		return
	}

	actorID := middleware.AccountIDFromContext(r.Context())
	if err := h.accounts.Delete(r.Context(), id, actorID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Учётная запись удалена"})
}

// writeServiceError транслирует ошибки сервисного слоя в HTTP-ответы.
func (h *AdminAccountsHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "учётная запись не найдена")
	case errors.Is(err, service.ErrConflict):
		// Конфликт уникальности относится к таксономии bad-request:
		// клиент прислал занятые username/email.
		apierrors.BadRequest(w, "администратор с таким username или email уже существует")
	case errors.Is(err, service.ErrSuperadminProtected):
		apierrors.Forbidden(w, "операция запрещена для учётной записи superadmin")
	case errors.Is(err, service.ErrSelfDelete):
		apierrors.Forbidden(w, "нельзя удалить собственную учётную запись")
	default:
		h.logger.Error("Ошибка сервисного слоя",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "внутренняя ошибка сервера")
	}
}
