package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// accessRecord — разобранная запись access-лога.
type accessRecord struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Component string `json:"component"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Route     string `json:"route"`
	Status    int    `json:"status"`
}

// doLogged прогоняет запрос через RequestLogger и возвращает запись лога.
func doLogged(t *testing.T, path string, status int) accessRecord {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var record accessRecord
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("не удалось разобрать запись лога %q: %v", buf.String(), err)
	}
	return record
}

func TestRequestLogger_Levels(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		level  string
	}{
		{"успешный запрос", "/api/admin/list", http.StatusOK, "INFO"},
		{"клиентская ошибка", "/api/admin/list", http.StatusForbidden, "WARN"},
		{"серверная ошибка", "/api/admin/list", http.StatusInternalServerError, "ERROR"},
		{"liveness probe", "/health/live", http.StatusOK, "DEBUG"},
		{"readiness probe", "/health/ready", http.StatusOK, "DEBUG"},
		{"метрики", "/metrics", http.StatusOK, "DEBUG"},
		// Отказ probe не должен прятаться на Debug
		{"readiness отказ", "/health/ready", http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := doLogged(t, tt.path, tt.status)
			if record.Level != tt.level {
				t.Errorf("уровень = %q, ожидается %q", record.Level, tt.level)
			}
			if record.Status != tt.status {
				t.Errorf("status = %d, ожидается %d", record.Status, tt.status)
			}
		})
	}
}

func TestRequestLogger_Attributes(t *testing.T) {
	record := doLogged(t, "/dashboard/assets/app.css", http.StatusOK)

	if record.Component != "http_access" {
		t.Errorf("component = %q, ожидается http_access", record.Component)
	}
	if record.Method != http.MethodGet {
		t.Errorf("method = %q", record.Method)
	}
	if record.Path != "/dashboard/assets/app.css" {
		t.Errorf("path = %q", record.Path)
	}
	// Route нормализуется так же, как лейблы метрик
	if record.Route != "/ui" {
		t.Errorf("route = %q, ожидается /ui", record.Route)
	}
}
