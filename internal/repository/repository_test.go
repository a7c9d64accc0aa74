package repository

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/adminpanel/internal/config"
	"github.com/bigkaa/adminpanel/internal/database"
	"github.com/bigkaa/adminpanel/internal/domain/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
// Возвращает pgxpool.Pool; очистка через t.Cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("adminpanel_test"),
		postgres.WithUsername("adminpanel"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	// Настраиваем env для config.Load()
	os.Setenv("AP_DB_HOST", host)
	os.Setenv("AP_DB_PORT", port.Port())
	os.Setenv("AP_DB_NAME", "adminpanel_test")
	os.Setenv("AP_DB_USER", "adminpanel")
	os.Setenv("AP_DB_PASSWORD", "test-password")
	os.Setenv("AP_DB_SSL_MODE", "disable")
	os.Setenv("AP_JWT_SECRET", "repository-test-secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Применяем миграции
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	// Подключаемся
	handle := database.NewHandle(cfg, logger)
	t.Cleanup(handle.Close)

	pool, err := handle.Pool(ctx)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}

	return pool
}

// newAccount — заготовка валидной учётной записи для тестов.
func newAccount(username, email string) *model.AdminAccount {
	return &model.AdminAccount{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2b$10$abcdefghijklmnopqrstuv",
		Role:         "admin",
		IsActive:     true,
	}
}

func TestAdminAccountCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAdminAccountRepository(pool)

	acc := newAccount("operator", "operator@example.com")

	// Create
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if acc.CreatedAt.IsZero() {
		t.Error("CreatedAt не установлен")
	}

	// GetByID — без password_hash
	got, err := repo.GetByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.Username != "operator" {
		t.Errorf("Username = %q, хотели %q", got.Username, "operator")
	}
	if got.PasswordHash != "" {
		t.Error("GetByID() вернул password_hash")
	}

	// GetByEmailWithPassword — единственный путь к хешу
	withHash, err := repo.GetByEmailWithPassword(ctx, "operator@example.com")
	if err != nil {
		t.Fatalf("GetByEmailWithPassword() ошибка: %v", err)
	}
	if withHash.PasswordHash == "" {
		t.Error("GetByEmailWithPassword() не вернул password_hash")
	}

	// ExistsByUsernameOrEmail
	exists, err := repo.ExistsByUsernameOrEmail(ctx, "operator", "other@example.com")
	if err != nil {
		t.Fatalf("ExistsByUsernameOrEmail() ошибка: %v", err)
	}
	if !exists {
		t.Error("ExistsByUsernameOrEmail() = false для занятого username")
	}
	exists, err = repo.ExistsByUsernameOrEmail(ctx, "ghost", "ghost@example.com")
	if err != nil {
		t.Fatalf("ExistsByUsernameOrEmail() ошибка: %v", err)
	}
	if exists {
		t.Error("ExistsByUsernameOrEmail() = true для свободной пары")
	}

	// ExistsByRole
	exists, err = repo.ExistsByRole(ctx, "admin")
	if err != nil {
		t.Fatalf("ExistsByRole() ошибка: %v", err)
	}
	if !exists {
		t.Error("ExistsByRole(admin) = false, хотели true")
	}
	exists, _ = repo.ExistsByRole(ctx, "superadmin")
	if exists {
		t.Error("ExistsByRole(superadmin) = true, хотели false")
	}

	// Delete
	if err := repo.Delete(ctx, acc.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	_, err = repo.GetByID(ctx, acc.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("После Delete ожидали ErrNotFound, получили: %v", err)
	}
	if err := repo.Delete(ctx, acc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Повторный Delete: ожидали ErrNotFound, получили: %v", err)
	}
}

func TestAdminAccountUniqueViolation(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAdminAccountRepository(pool)

	if err := repo.Create(ctx, newAccount("dup", "dup@example.com")); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// Тот же username, другой email
	err := repo.Create(ctx, newAccount("dup", "dup2@example.com"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Дубликат username: ожидали ErrConflict, получили: %v", err)
	}

	// Тот же email, другой username
	err = repo.Create(ctx, newAccount("dup2", "dup@example.com"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Дубликат email: ожидали ErrConflict, получили: %v", err)
	}
}

func TestAdminAccountListOrder(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAdminAccountRepository(pool)

	for _, name := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, newAccount(name, name+"@example.com")); err != nil {
			t.Fatalf("Create(%s) ошибка: %v", name, err)
		}
		// created_at должны различаться
		time.Sleep(10 * time.Millisecond)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() вернул %d записей, хотели 3", len(list))
	}
	if list[0].Username != "third" || list[2].Username != "first" {
		t.Errorf("Порядок списка: [%s, %s, %s], хотели новые первыми",
			list[0].Username, list[1].Username, list[2].Username)
	}
	for _, acc := range list {
		if acc.PasswordHash != "" {
			t.Errorf("List() вернул password_hash для %s", acc.Username)
		}
	}
}

func TestAdminAccountUpdateProfile(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAdminAccountRepository(pool)

	acc := newAccount("renameme", "renameme@example.com")
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// created_at и updated_at должны различаться после UPDATE
	time.Sleep(10 * time.Millisecond)

	// Только username, email не трогаем
	newName := "renamed"
	got, err := repo.UpdateProfile(ctx, acc.ID, &newName, nil)
	if err != nil {
		t.Fatalf("UpdateProfile() ошибка: %v", err)
	}
	if got.Username != "renamed" {
		t.Errorf("Username = %q, хотели %q", got.Username, "renamed")
	}
	if got.Email != "renameme@example.com" {
		t.Errorf("Email изменился: %q", got.Email)
	}
	if !got.UpdatedAt.After(acc.UpdatedAt) {
		t.Error("UpdatedAt не обновился")
	}

	// Оба поля
	newEmail := "renamed@example.com"
	got2, err := repo.UpdateProfile(ctx, acc.ID, nil, &newEmail)
	if err != nil {
		t.Fatalf("UpdateProfile() ошибка: %v", err)
	}
	if got2.Email != "renamed@example.com" {
		t.Errorf("Email = %q, хотели %q", got2.Email, "renamed@example.com")
	}

	// Конфликт с другой записью
	other := newAccount("other", "other@example.com")
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	conflictName := "renamed"
	_, err = repo.UpdateProfile(ctx, other.ID, &conflictName, nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Конфликт username: ожидали ErrConflict, получили: %v", err)
	}

	// Несуществующий id
	_, err = repo.UpdateProfile(ctx, uuid.New().String(), &newName, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Несуществующий id: ожидали ErrNotFound, получили: %v", err)
	}
}

func TestAdminAccountSetActiveAndLastLogin(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewAdminAccountRepository(pool)

	acc := newAccount("toggled", "toggled@example.com")
	if err := repo.Create(ctx, acc); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// SetActive(false)
	got, err := repo.SetActive(ctx, acc.ID, false)
	if err != nil {
		t.Fatalf("SetActive() ошибка: %v", err)
	}
	if got.IsActive {
		t.Error("IsActive = true после деактивации")
	}

	// SetActive(true)
	got, err = repo.SetActive(ctx, acc.ID, true)
	if err != nil {
		t.Fatalf("SetActive() ошибка: %v", err)
	}
	if !got.IsActive {
		t.Error("IsActive = false после активации")
	}

	_, err = repo.SetActive(ctx, uuid.New().String(), false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SetActive несуществующего id: ожидали ErrNotFound, получили: %v", err)
	}

	// SetLastLogin
	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := repo.SetLastLogin(ctx, acc.ID, now); err != nil {
		t.Fatalf("SetLastLogin() ошибка: %v", err)
	}
	got, _ = repo.GetByID(ctx, acc.ID)
	if got.LastLogin == nil || !got.LastLogin.Equal(now) {
		t.Errorf("LastLogin = %v, хотели %v", got.LastLogin, now)
	}
}
