package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-PostBookingService/internal/api/handlers"
)

const (
	headerAuthorization = "Authorization"
	headerAdminToken    = "X-Admin-Token"
	bearerPrefix        = "Bearer "

	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен"
	msgForbidden    = "доступ запрещен"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// TokenParser проверяет токен клиента и возвращает его ID
type TokenParser interface {
	Parse(token string) (int64, error)
}

// Auth проверяет Bearer токен и кладет ID клиента в контекст
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(headerAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			clientID, err := tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
		})
	}
}

// Admin пропускает запросы с заголовком X-Admin-Token, равным token.
// Пустой token закрывает все админские маршруты.
func Admin(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(headerAdminToken))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithClientID кладет ID клиента в контекст
func WithClientID(ctx context.Context, clientID int64) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// GetClientID достает ID клиента, положенный Auth
func GetClientID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(clientIDKey).(int64)
	return id, ok
}
