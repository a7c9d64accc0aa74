// bootstrap.go — идемпотентное создание стартовой учётной записи superadmin.
// Выполняется при запуске, чтобы в новой установке был хотя бы один
// администратор с правом управления учётными записями.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bigkaa/adminpanel/internal/domain/model"
	"github.com/bigkaa/adminpanel/internal/domain/rbac"
	"github.com/bigkaa/adminpanel/internal/domain/validate"
	"github.com/bigkaa/adminpanel/internal/repository"
)

// SeedInput — данные стартовой учётной записи superadmin.
type SeedInput struct {
	Username string
	Email    string
	Password string
}

// EnsureSuperadmin создаёт учётную запись superadmin, если в БД нет ни одной.
// Повторные запуски ничего не меняют. Гонка между несколькими репликами
// разрешается уникальными индексами БД: конфликт трактуется как успех.
func EnsureSuperadmin(
	ctx context.Context,
	repo repository.AdminAccountRepository,
	in SeedInput,
	logger *slog.Logger,
) error {
	log := logger.With(slog.String("component", "bootstrap"))

	exists, err := repo.ExistsByRole(ctx, rbac.RoleSuperadmin)
	if err != nil {
		return fmt.Errorf("проверка наличия superadmin: %w", err)
	}
	if exists {
		log.Debug("Учётная запись superadmin уже существует, пропускаем")
		return nil
	}

	if err := validate.Username(in.Username); err != nil {
		return fmt.Errorf("стартовый superadmin: %w", err)
	}
	if err := validate.Email(in.Email); err != nil {
		return fmt.Errorf("стартовый superadmin: %w", err)
	}
	if err := validate.Password(in.Password); err != nil {
		return fmt.Errorf("стартовый superadmin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("хэширование пароля superadmin: %w", err)
	}

	acc := &model.AdminAccount{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         rbac.RoleSuperadmin,
		IsActive:     true,
	}

	if err := repo.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Параллельная реплика успела первой.
			log.Info("Учётная запись superadmin создана параллельно, пропускаем")
			return nil
		}
		return fmt.Errorf("создание учётной записи superadmin: %w", err)
	}

	log.Info("Создана стартовая учётная запись superadmin",
		slog.String("account_id", acc.ID),
		slog.String("username", acc.Username),
	)

	return nil
}
