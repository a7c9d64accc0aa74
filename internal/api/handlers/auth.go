// auth.go — обработчики аутентификации: вход, выход, текущая учётная запись.
// Сессионный токен выдаётся в HttpOnly cookie adminToken и дублируется
// в теле ответа для клиентов, работающих через Authorization: Bearer.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/adminpanel/internal/api/errors"
	"github.com/bigkaa/adminpanel/internal/api/middleware"
	"github.com/bigkaa/adminpanel/internal/domain/model"
	"github.com/bigkaa/adminpanel/internal/service"
)

// AuthHandler — обработчик endpoints аутентификации.
type AuthHandler struct {
	auth *service.AuthService
	// production управляет флагом Secure у session cookie.
	production bool
	logger     *slog.Logger
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(auth *service.AuthService, production bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		production: production,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// loginRequest — тело запроса POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse — тело ответа успешного входа.
type loginResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	Admin   model.AdminSummary `json:"admin"`
}

// Login — POST /api/auth/login.
// Проверяет email/пароль, выдаёт сессионный токен в cookie adminToken.
// Пустые email или пароль — 400. Любая причина отказа после валидации
// (нет такой записи, неверный пароль, запись деактивирована) даёт
// одинаковый ответ 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	signed, acc, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			apierrors.Unauthorized(w, "неверные учётные данные")
			return
		}
		h.logger.Error("Ошибка входа",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "внутренняя ошибка сервера")
		return
	}

	http.SetCookie(w, h.sessionCookie(signed, int(h.auth.TokenTTL().Seconds())))

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Вход выполнен",
		Token:   signed,
		Admin:   acc.Summary(),
	})
}

// Logout — POST /api/auth/logout.
// Удаляет session cookie. Токен при этом не отзывается: он перестаёт
// действовать по истечении TTL.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Выход выполнен"})
}

// Me — GET /api/auth/me.
// Возвращает актуальные данные учётной записи из БД, а не из токена.
// Если запись удалена или деактивирована после выдачи токена — 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountIDFromContext(r.Context())
	if accountID == "" {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	acc, err := h.auth.CurrentAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.Unauthorized(w, "учётная запись не найдена")
			return
		}
		h.logger.Error("Ошибка получения текущей учётной записи",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "внутренняя ошибка сервера")
		return
	}

	if !acc.IsActive {
		apierrors.Unauthorized(w, "учётная запись деактивирована")
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.AdminSummary{"admin": acc.Summary()})
}

// sessionCookie собирает session cookie с атрибутами безопасности.
// maxAge < 0 удаляет cookie.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
}
