package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
)

type ctxKey int

const userIDKey ctxKey = iota

// Auth проверяет заголовок X-User-ID и кладет ID актора в контекст
// Аутентификацию как таковую выполняет вышестоящий шлюз (бот/гейтвей);
// сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID актора из контекста запроса
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
