// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — учётная запись не найдена.
	ErrNotFound = errors.New("учётная запись не найдена")
	// ErrConflict — администратор с таким username или email уже существует.
	ErrConflict = errors.New("администратор с таким username или email уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrInvalidCredentials — неверные учётные данные.
	// Единый ответ для несуществующего email, неверного пароля и
	// деактивированной записи, чтобы не раскрывать причину отказа.
	ErrInvalidCredentials = errors.New("неверные учётные данные")
	// ErrSuperadminProtected — операция запрещена для учётной записи superadmin.
	ErrSuperadminProtected = errors.New("операция запрещена для учётной записи superadmin")
	// ErrSelfDelete — попытка удалить собственную учётную запись.
	ErrSelfDelete = errors.New("нельзя удалить собственную учётную запись")
)
