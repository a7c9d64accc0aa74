// logging.go — access-лог панели администрирования через slog.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// accessRecorder перехватывает статус-код и размер ответа для access-лога.
type accessRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (rec *accessRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *accessRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rec *accessRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// probePaths — endpoints, опрашиваемые kubelet и Prometheus.
// Их access-записи уходят на Debug, чтобы не засорять лог.
var probePaths = map[string]bool{
	"/health/live":  true,
	"/health/ready": true,
	"/metrics":      true,
}

// RequestLogger возвращает access-лог middleware. Каждый запрос пишется
// с методом, путём, нормализованным route (тот же, что в лейблах метрик),
// статусом, длительностью и размером ответа. Уровень: Debug для probe
// endpoints, Warn для 4xx, Error для 5xx, иначе Info.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With(slog.String("component", "http_access"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &accessRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			var level slog.Level
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			case probePaths[r.URL.Path]:
				level = slog.LevelDebug
			default:
				level = slog.LevelInfo
			}

			log.LogAttrs(r.Context(), level, "Обработан HTTP запрос",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", normalizePath(r.URL.Path)),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.bytes),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
