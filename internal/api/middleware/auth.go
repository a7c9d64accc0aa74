// auth.go — middleware аутентификации панели администрирования.
// Извлекает сессионный токен из cookie adminToken либо из заголовка
// Authorization: Bearer, проверяет подпись и помещает claims в контекст.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/adminpanel/internal/api/errors"
	"github.com/bigkaa/adminpanel/internal/token"
)

// SessionCookieName — имя cookie с сессионным токеном.
const SessionCookieName = "adminToken"

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeyClaims — проверенные claims сессии в контексте запроса.
const ContextKeyClaims contextKey = "session_claims"

// Authorizer — middleware проверки сессионного токена.
type Authorizer struct {
	codec  *token.Codec
	logger *slog.Logger
}

// NewAuthorizer создаёт middleware аутентификации.
func NewAuthorizer(codec *token.Codec, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		codec:  codec,
		logger: logger.With(slog.String("component", "authorizer")),
	}
}

// Middleware возвращает HTTP middleware для проверки сессионного токена.
// Токен ищется сначала в cookie adminToken, затем в Authorization: Bearer.
// При отсутствии или невалидности токена — 401 без деталей причины.
func (a *Authorizer) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				apierrors.Unauthorized(w, "Требуется аутентификация")
				return
			}

			claims, err := a.codec.Verify(tokenString)
			if err != nil {
				// Причину (просрочен/повреждён) пишем только в лог,
				// клиенту — единый ответ 401.
				if errors.Is(err, token.ErrExpired) {
					a.logger.Debug("Сессионный токен просрочен",
						slog.String("remote_addr", r.RemoteAddr),
					)
				} else {
					a.logger.Debug("Сессионный токен не прошёл проверку",
						slog.String("error", err.Error()),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
				apierrors.Unauthorized(w, "Невалидный или просроченный токен")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken извлекает сессионный токен из запроса.
// Приоритет: cookie adminToken, затем заголовок Authorization: Bearer.
// Возвращает пустую строку, если токен не найден.
func ExtractToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// --- Context helpers ---

// ClaimsFromContext извлекает claims сессии из контекста запроса.
// Возвращает nil, если claims не найдены.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

// AccountIDFromContext извлекает идентификатор учётной записи из контекста.
// Возвращает пустую строку, если claims не найдены.
func AccountIDFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.AccountID()
}

// RoleFromContext извлекает роль учётной записи из контекста.
// Возвращает пустую строку, если claims не найдены.
func RoleFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.Role
}
