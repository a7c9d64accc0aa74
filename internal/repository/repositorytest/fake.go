// Пакет repositorytest — репозиторий учётных записей в памяти для unit-тестов
// сервисного слоя и HTTP-обработчиков. Повторяет семантику Postgres-реализации:
// уникальность username/email, сортировка списка по дате создания (новые первыми),
// исключение password_hash из всех выборок, кроме GetByEmailWithPassword.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bigkaa/adminpanel/internal/domain/model"
	"github.com/bigkaa/adminpanel/internal/repository"
)

// Fake — потокобезопасная реализация repository.AdminAccountRepository в памяти.
type Fake struct {
	mu       sync.Mutex
	accounts map[string]*model.AdminAccount

	// seq — монотонный счётчик для различимых created_at.
	seq int
}

// компилятор проверяет соответствие интерфейсу
var _ repository.AdminAccountRepository = (*Fake)(nil)

// New создаёт пустой репозиторий в памяти.
func New() *Fake {
	return &Fake{accounts: make(map[string]*model.AdminAccount)}
}

func clone(acc *model.AdminAccount) *model.AdminAccount {
	c := *acc
	if acc.LastLogin != nil {
		t := *acc.LastLogin
		c.LastLogin = &t
	}
	return &c
}

// Create сохраняет учётную запись. Проставляет created_at/updated_at.
func (f *Fake) Create(_ context.Context, acc *model.AdminAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.accounts {
		if existing.Username == acc.Username || existing.Email == acc.Email {
			return repository.ErrConflict
		}
	}
	f.seq++
	stored := clone(acc)
	stored.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Minute)
	stored.UpdatedAt = stored.CreatedAt
	f.accounts[acc.ID] = stored
	acc.CreatedAt = stored.CreatedAt
	acc.UpdatedAt = stored.UpdatedAt
	return nil
}

// GetByID возвращает запись без password_hash.
func (f *Fake) GetByID(_ context.Context, id string) (*model.AdminAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := clone(acc)
	c.PasswordHash = ""
	return c, nil
}

// GetByEmailWithPassword возвращает запись вместе с password_hash.
func (f *Fake) GetByEmailWithPassword(_ context.Context, email string) (*model.AdminAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Email == email {
			return clone(acc), nil
		}
	}
	return nil, repository.ErrNotFound
}

// ExistsByUsernameOrEmail проверяет занятость username или email.
func (f *Fake) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Username == username || acc.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByRole проверяет наличие хотя бы одной записи с ролью.
func (f *Fake) ExistsByRole(_ context.Context, role string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// List возвращает все записи, новые первыми, без password_hash.
func (f *Fake) List(_ context.Context) ([]*model.AdminAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.AdminAccount, 0, len(f.accounts))
	for _, acc := range f.accounts {
		c := clone(acc)
		c.PasswordHash = ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateProfile меняет только переданные поля (nil — не менять).
func (f *Fake) UpdateProfile(_ context.Context, id string, username, email *string) (*model.AdminAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for otherID, other := range f.accounts {
		if otherID == id {
			continue
		}
		if username != nil && other.Username == *username {
			return nil, repository.ErrConflict
		}
		if email != nil && other.Email == *email {
			return nil, repository.ErrConflict
		}
	}
	if username != nil {
		acc.Username = *username
	}
	if email != nil {
		acc.Email = *email
	}
	acc.UpdatedAt = acc.UpdatedAt.Add(time.Second)
	c := clone(acc)
	c.PasswordHash = ""
	return c, nil
}

// SetActive выставляет флаг активности.
func (f *Fake) SetActive(_ context.Context, id string, active bool) (*model.AdminAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	acc.IsActive = active
	c := clone(acc)
	c.PasswordHash = ""
	return c, nil
}

// SetLastLogin проставляет время последнего входа.
func (f *Fake) SetLastLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	t := at
	acc.LastLogin = &t
	return nil
}

// Delete удаляет запись.
func (f *Fake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}
