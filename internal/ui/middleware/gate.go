// Пакет middleware — HTTP middleware страниц dashboard.
// gate.go — маршрутный шлюз: перенаправление между /login и защищёнными
// страницами по наличию session cookie. Шлюз проверяет только наличие
// токена, а не его подпись: криптографическая проверка выполняется для
// каждого запроса к /api/*, просроченный токен на странице приведёт
// к 401 от API и возврату на /login.
package middleware

import (
	"net/http"

	apimw "github.com/bigkaa/adminpanel/internal/api/middleware"
)

// LoginPath — страница входа.
const LoginPath = "/login"

// DashboardPath — основная защищённая страница.
const DashboardPath = "/dashboard"

// hasSessionToken проверяет наличие непустой session cookie.
func hasSessionToken(r *http.Request) bool {
	c, err := r.Cookie(apimw.SessionCookieName)
	return err == nil && c.Value != ""
}

// Gate возвращает middleware маршрутного шлюза для страниц панели:
//   - посетитель /login с токеном перенаправляется на /dashboard;
//   - посетитель защищённой страницы без токена перенаправляется на /login.
func Gate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated := hasSessionToken(r)

			if r.URL.Path == LoginPath {
				if authenticated {
					http.Redirect(w, r, DashboardPath, http.StatusFound)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if !authenticated {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
