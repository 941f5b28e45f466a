package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userIDHeader            = "X-User-ID"
	trainerIDVar            = "trainerId"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgNotOwner      = "доступ разрешен только владельцу расписания"
)

// Auth извлекает ID пользователя из X-User-ID и кладет его в контекст
// Аутентификация выполняется на gateway, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// TrainerOwner пропускает только запросы, где X-User-ID совпадает с {trainerId}
// Должен стоять после Auth
func TrainerOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		trainerID, err := strconv.ParseInt(mux.Vars(r)[trainerIDVar], 10, 64)
		if err != nil || trainerID != userID {
			handlers.RespondForbidden(w, msgNotOwner)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
