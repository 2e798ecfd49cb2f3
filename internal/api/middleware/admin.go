package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/yaduk2001/selling-sub001/internal/api/handlers"
)

// AdminAPIKeyHeader заголовок со статическим ключом администратора
const AdminAPIKeyHeader = "X-Api-Key"

const (
	msgMissingAPIKey = "отсутствует ключ API"
	msgInvalidAPIKey = "неверный ключ API"
)

// AdminAuth пропускает запрос, только если X-Api-Key совпадает с apiKey.
// Пустой apiKey закрывает маршруты полностью.
func AdminAuth(apiKey string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminAPIKeyHeader)
			if provided == "" {
				logger.Warn("%s %s - Missing API key", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingAPIKey)
				return
			}

			if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.Warn("%s %s - Invalid API key", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgInvalidAPIKey)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
