// Пакет validate — валидация входных данных учётных записей.
// Правила не зависят от ограничений БД: уникальный индекс остаётся
// последней линией защиты, но формат проверяется до каждой записи.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bigkaa/adminpanel/internal/domain/rbac"
)

const (
	// MinUsernameLen — минимальная длина имени пользователя.
	MinUsernameLen = 3
	// MinPasswordLen — минимальная длина пароля.
	MinPasswordLen = 6
)

// emailRe — формат email.
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Username проверяет имя пользователя: непустое, минимум 3 символа
// после обрезки пробелов.
func Username(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}
	if len(username) < MinUsernameLen {
		return fmt.Errorf("имя пользователя должно содержать минимум %d символа", MinUsernameLen)
	}
	return nil
}

// Email проверяет формат email.
func Email(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("некорректный формат email: %q", email)
	}
	return nil
}

// Password проверяет пароль: непустой, минимум 6 символов.
func Password(password string) error {
	if password == "" {
		return fmt.Errorf("пароль обязателен")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("пароль должен содержать минимум %d символов", MinPasswordLen)
	}
	return nil
}

// Role проверяет, что роль входит в закрытый набор.
func Role(role string) error {
	if !rbac.IsValidRole(role) {
		return fmt.Errorf("некорректная роль %q: допустимые значения — %s, %s",
			role, rbac.RoleAdmin, rbac.RoleSuperadmin)
	}
	return nil
}
