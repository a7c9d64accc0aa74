// Пакет rbac — ролевая модель панели администрирования.
// Две роли: admin (просмотр) и superadmin (полное управление).
// Учётные записи с ролью superadmin защищены от деактивации и удаления.
package rbac

// Роли в порядке возрастания привилегий.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// roleWeight — вес роли для сравнения.
var roleWeight = map[string]int{
	RoleAdmin:      1,
	RoleSuperadmin: 2,
}

// IsValidRole проверяет, является ли строка допустимой ролью.
func IsValidRole(role string) bool {
	_, ok := roleWeight[role]
	return ok
}

// CanManageAccounts — может ли роль выполнять мутирующие операции
// над учётными записями (create, update, toggle-status, delete).
func CanManageAccounts(role string) bool {
	return role == RoleSuperadmin
}

// IsProtected — защищена ли учётная запись с данной ролью от
// деактивации и удаления через management endpoints.
func IsProtected(role string) bool {
	return role == RoleSuperadmin
}

// DefaultRole — роль по умолчанию для новых учётных записей.
func DefaultRole() string {
	return RoleAdmin
}
