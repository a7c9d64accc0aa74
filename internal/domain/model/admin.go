package model

import "time"

// AdminAccount — учётная запись администратора панели.
// Хранится в таблице admin_accounts. PasswordHash никогда
// не попадает в API-ответы (см. Summary).
type AdminAccount struct {
	// ID — UUID записи
	ID string
	// Username — уникальное имя пользователя (минимум 3 символа)
	Username string
	// Email — уникальный email
	Email string
	// PasswordHash — bcrypt-хеш пароля
	PasswordHash string
	// Role — роль (admin, superadmin)
	Role string
	// IsActive — активна ли учётная запись
	IsActive bool
	// LastLogin — время последнего успешного входа (может быть nil)
	LastLogin *time.Time
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// AdminSummary — публичное представление учётной записи для API.
// Поле пароля отсутствует принципиально, а не через omitempty.
type AdminSummary struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Summary возвращает публичное представление учётной записи.
func (a *AdminAccount) Summary() AdminSummary {
	return AdminSummary{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}
