// Пакет static — встроенные ресурсы dashboard панели администрирования.
// Страницы login и dashboard с CSS и JS встраиваются в бинарник через
// //go:embed и раздаются через HTTP.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

// content — встроенная файловая система со всеми ресурсами dashboard.
//
//go:embed *.html css/*.css js/*.js
var content embed.FS

// FileSystem возвращает http.FileSystem для раздачи /static/*.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS для прямого доступа к встроенным файлам.
func FS() fs.FS {
	return content
}

// Page читает встроенную HTML-страницу по имени файла.
func Page(name string) ([]byte, error) {
	return content.ReadFile(name)
}
