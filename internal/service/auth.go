// Пакет service — бизнес-логика панели администрирования.
// auth.go — сервис аутентификации: вход по email/паролю и выдача сессионного токена.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bigkaa/adminpanel/internal/domain/model"
	"github.com/bigkaa/adminpanel/internal/repository"
	"github.com/bigkaa/adminpanel/internal/token"
)

// AuthService — сервис аутентификации администраторов.
type AuthService struct {
	repo   repository.AdminAccountRepository
	codec  *token.Codec
	logger *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo repository.AdminAccountRepository, codec *token.Codec, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		codec:  codec,
		logger: logger.With(slog.String("component", "auth_service")),
	}
}

// TokenTTL возвращает срок жизни выдаваемого сессионного токена.
func (s *AuthService) TokenTTL() time.Duration {
	return s.codec.TTL()
}

// Login проверяет учётные данные и выдаёт сессионный токен.
// Пустые email или пароль — ошибка валидации (до обращения к БД).
// Несуществующий email, деактивированная запись и неверный пароль
// дают один и тот же ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.AdminAccount, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email и пароль обязательны", ErrValidation)
	}

	acc, err := s.repo.GetByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("поиск учётной записи по email: %w", err)
	}

	if !acc.IsActive {
		s.logger.Warn("Попытка входа в деактивированную учётную запись",
			slog.String("account_id", acc.ID),
		)
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.SetLastLogin(ctx, acc.ID, now); err != nil {
		// Вход не блокируем, отметка времени не критична.
		s.logger.Warn("Не удалось обновить время последнего входа",
			slog.String("account_id", acc.ID),
			slog.String("error", err.Error()),
		)
	} else {
		acc.LastLogin = &now
	}

	signed, err := s.codec.Sign(acc.ID, acc.Email, acc.Role)
	if err != nil {
		return "", nil, fmt.Errorf("подписание сессионного токена: %w", err)
	}

	s.logger.Info("Успешный вход администратора",
		slog.String("account_id", acc.ID),
		slog.String("role", acc.Role),
	)

	return signed, acc, nil
}

// CurrentAccount возвращает актуальные данные учётной записи по её ID.
// Используется для GET /api/auth/me: данные читаются из БД, а не из токена,
// чтобы отражать изменения, сделанные после выдачи токена.
func (s *AuthService) CurrentAccount(ctx context.Context, accountID string) (*model.AdminAccount, error) {
	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение учётной записи: %w", err)
	}
	return acc, nil
}
