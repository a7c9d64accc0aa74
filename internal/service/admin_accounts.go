// admin_accounts.go — сервис управления учётными записями администраторов.
// CRUD с правилами защиты superadmin и проверкой уникальности username/email.
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

// passwordHashCost — стоимость bcrypt для хэширования паролей.
const passwordHashCost = 10

// AdminAccountService — сервис управления учётными записями.
type AdminAccountService struct {
	repo   repository.AdminAccountRepository
	logger *slog.Logger
}

// NewAdminAccountService создаёт сервис управления учётными записями.
func NewAdminAccountService(repo repository.AdminAccountRepository, logger *slog.Logger) *AdminAccountService {
	return &AdminAccountService{
		repo:   repo,
		logger: logger.With(slog.String("component", "admin_accounts_service")),
	}
}

// CreateInput — входные данные создания администратора.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Create создаёт новую учётную запись администратора.
// Пустая роль заменяется ролью по умолчанию (admin).
// Уникальность username/email проверяется предварительным запросом,
// но окончательное слово — за уникальными индексами БД.
func (s *AdminAccountService) Create(ctx context.Context, in CreateInput) (*model.AdminAccount, error) {
	if err := validate.Username(in.Username); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validate.Email(in.Email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := validate.Password(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	role := in.Role
	if role == "" {
		role = rbac.DefaultRole()
	}
	if err := validate.Role(role); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("проверка уникальности username/email: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	acc := &model.AdminAccount{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Гонка с параллельным созданием: индекс БД главнее предварительной проверки.
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("создание учётной записи: %w", err)
	}

	s.logger.Info("Создана учётная запись администратора",
		slog.String("account_id", acc.ID),
		slog.String("username", acc.Username),
		slog.String("role", acc.Role),
	)

	return acc, nil
}

// List возвращает все учётные записи, отсортированные по дате создания (новые первыми).
func (s *AdminAccountService) List(ctx context.Context) ([]*model.AdminAccount, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка учётных записей: %w", err)
	}
	return accounts, nil
}

// UpdateInput — входные данные обновления профиля.
// nil означает «поле не менять».
type UpdateInput struct {
	Username *string
	Email    *string
}

// Update обновляет username и/или email учётной записи.
// Пустая строка приравнивается к отсутствующему полю.
// Хотя бы одно поле должно быть задано.
func (s *AdminAccountService) Update(ctx context.Context, id string, in UpdateInput) (*model.AdminAccount, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: не указан id учётной записи", ErrValidation)
	}
	if in.Username != nil && *in.Username == "" {
		in.Username = nil
	}
	if in.Email != nil && *in.Email == "" {
		in.Email = nil
	}
	if in.Username == nil && in.Email == nil {
		return nil, fmt.Errorf("%w: не указаны поля для обновления", ErrValidation)
	}
	if in.Username != nil {
		if err := validate.Username(*in.Username); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
	}
	if in.Email != nil {
		if err := validate.Email(*in.Email); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
	}

	acc, err := s.repo.UpdateProfile(ctx, id, in.Username, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("обновление учётной записи: %w", err)
	}

	s.logger.Info("Обновлена учётная запись администратора",
		slog.String("account_id", acc.ID),
	)

	return acc, nil
}

// ToggleStatus переключает флаг активности учётной записи.
// Учётная запись superadmin защищена от деактивации.
func (s *AdminAccountService) ToggleStatus(ctx context.Context, id string) (*model.AdminAccount, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: не указан id учётной записи", ErrValidation)
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение учётной записи: %w", err)
	}

	if rbac.IsProtected(acc.Role) {
		return nil, ErrSuperadminProtected
	}

	updated, err := s.repo.SetActive(ctx, id, !acc.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("переключение активности: %w", err)
	}

	s.logger.Info("Переключена активность учётной записи",
		slog.String("account_id", updated.ID),
		slog.Bool("is_active", updated.IsActive),
	)

	return updated, nil
}

// Delete удаляет учётную запись администратора.
// Запрещено удалять superadmin и собственную учётную запись (actorID).
func (s *AdminAccountService) Delete(ctx context.Context, id, actorID string) error {
	if id == "" {
		return fmt.Errorf("%w: не указан id учётной записи", ErrValidation)
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("получение учётной записи: %w", err)
	}

	if rbac.IsProtected(acc.Role) {
		return ErrSuperadminProtected
	}
	if acc.ID == actorID {
		return ErrSelfDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление учётной записи: %w", err)
	}

	s.logger.Info("Удалена учётная запись администратора",
		slog.String("account_id", id),
		slog.String("deleted_by", actorID),
	)

	return nil
}
