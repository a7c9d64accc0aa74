package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/adminpanel/internal/domain/model"
)

// AdminAccountRepository — интерфейс CRUD для таблицы admin_accounts.
type AdminAccountRepository interface {
	// Create создаёт новую учётную запись. Нарушение уникальности
	// username или email возвращается как ErrConflict — этот ответ БД
	// авторитетен независимо от предварительных проверок.
	Create(ctx context.Context, acc *model.AdminAccount) error
	// GetByID возвращает учётную запись по UUID (без password_hash).
	GetByID(ctx context.Context, id string) (*model.AdminAccount, error)
	// GetByEmailWithPassword возвращает учётную запись по email,
	// включая password_hash. Используется только в login.
	GetByEmailWithPassword(ctx context.Context, email string) (*model.AdminAccount, error)
	// ExistsByUsernameOrEmail проверяет, занято ли имя пользователя
	// или email (одним запросом).
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// ExistsByRole проверяет наличие хотя бы одной записи с ролью.
	ExistsByRole(ctx context.Context, role string) (bool, error)
	// List возвращает все учётные записи, новые — первыми.
	List(ctx context.Context) ([]*model.AdminAccount, error)
	// UpdateProfile обновляет username и/или email. Nil-поля не трогаются.
	UpdateProfile(ctx context.Context, id string, username, email *string) (*model.AdminAccount, error)
	// SetActive выставляет флаг is_active.
	SetActive(ctx context.Context, id string, active bool) (*model.AdminAccount, error)
	// SetLastLogin обновляет время последнего входа.
	SetLastLogin(ctx context.Context, id string, at time.Time) error
	// Delete удаляет учётную запись.
	Delete(ctx context.Context, id string) error
}

// adminAccountRepo — реализация AdminAccountRepository.
type adminAccountRepo struct {
	db DBTX
}

// NewAdminAccountRepository создаёт репозиторий учётных записей.
func NewAdminAccountRepository(db DBTX) AdminAccountRepository {
	return &adminAccountRepo{db: db}
}

// accountColumns — колонки без password_hash: хеш пароля читается
// только явным GetByEmailWithPassword.
const accountColumns = `id, username, email, role, is_active, last_login, created_at, updated_at`

// scanAccount сканирует строку результата (без password_hash) в модель.
func scanAccount(row pgx.Row) (*model.AdminAccount, error) {
	acc := &model.AdminAccount{}
	err := row.Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.Role,
		&acc.IsActive, &acc.LastLogin, &acc.CreatedAt, &acc.UpdatedAt,
	)
	return acc, err
}

func (r *adminAccountRepo) Create(ctx context.Context, acc *model.AdminAccount) error {
	query := `
		INSERT INTO admin_accounts (id, username, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		acc.ID, acc.Username, acc.Email, acc.PasswordHash, acc.Role, acc.IsActive,
	).Scan(&acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: имя пользователя или email уже заняты", ErrConflict)
		}
		return fmt.Errorf("ошибка создания учётной записи: %w", err)
	}
	return nil
}

func (r *adminAccountRepo) GetByID(ctx context.Context, id string) (*model.AdminAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM admin_accounts WHERE id = $1`, accountColumns)
	acc, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения учётной записи: %w", err)
	}
	return acc, nil
}

func (r *adminAccountRepo) GetByEmailWithPassword(ctx context.Context, email string) (*model.AdminAccount, error) {
	query := `
		SELECT id, username, email, password_hash, role, is_active, last_login, created_at, updated_at
		FROM admin_accounts
		WHERE email = $1`

	acc := &model.AdminAccount{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash, &acc.Role,
		&acc.IsActive, &acc.LastLogin, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения учётной записи по email: %w", err)
	}
	return acc, nil
}

func (r *adminAccountRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admin_accounts WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки занятости username/email: %w", err)
	}
	return exists, nil
}

func (r *adminAccountRepo) ExistsByRole(ctx context.Context, role string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admin_accounts WHERE role = $1)`,
		role,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки наличия роли: %w", err)
	}
	return exists, nil
}

func (r *adminAccountRepo) List(ctx context.Context) ([]*model.AdminAccount, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM admin_accounts
		ORDER BY created_at DESC`, accountColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка учётных записей: %w", err)
	}
	defer rows.Close()

	var result []*model.AdminAccount
	for rows.Next() {
		acc := &model.AdminAccount{}
		if err := rows.Scan(
			&acc.ID, &acc.Username, &acc.Email, &acc.Role,
			&acc.IsActive, &acc.LastLogin, &acc.CreatedAt, &acc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования учётной записи: %w", err)
		}
		result = append(result, acc)
	}
	return result, rows.Err()
}

func (r *adminAccountRepo) UpdateProfile(ctx context.Context, id string, username, email *string) (*model.AdminAccount, error) {
	query := fmt.Sprintf(`
		UPDATE admin_accounts
		SET username = COALESCE($2, username),
			email = COALESCE($3, email)
		WHERE id = $1
		RETURNING %s`, accountColumns)

	acc, err := scanAccount(r.db.QueryRow(ctx, query, id, username, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: имя пользователя или email уже заняты", ErrConflict)
		}
		return nil, fmt.Errorf("ошибка обновления учётной записи: %w", err)
	}
	return acc, nil
}

func (r *adminAccountRepo) SetActive(ctx context.Context, id string, active bool) (*model.AdminAccount, error) {
	query := fmt.Sprintf(`
		UPDATE admin_accounts
		SET is_active = $2
		WHERE id = $1
		RETURNING %s`, accountColumns)

	acc, err := scanAccount(r.db.QueryRow(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка изменения статуса учётной записи: %w", err)
	}
	return acc, nil
}

func (r *adminAccountRepo) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admin_accounts SET last_login = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления last_login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *adminAccountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admin_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления учётной записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
