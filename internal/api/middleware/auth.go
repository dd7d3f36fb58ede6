package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/WorkSlot-BookingService/internal/api/handlers"
)

type contextKey string

const (
	// ProviderIDHeader заголовок с ID провайдера, проставляется сервисом идентификации
	ProviderIDHeader = "X-Provider-ID"

	providerIDKey contextKey = "providerID"

	msgMissingProviderID = "отсутствует или некорректен заголовок X-Provider-ID"
)

// Auth извлекает ID провайдера из заголовка и кладёт его в контекст.
// Заголовку доверяем: запрос уже прошёл через шлюз идентификации.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ProviderIDHeader)
		providerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || providerID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingProviderID)
			return
		}

		ctx := context.WithValue(r.Context(), providerIDKey, providerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetProviderID возвращает ID провайдера из контекста
func GetProviderID(ctx context.Context) (int64, bool) {
	providerID, ok := ctx.Value(providerIDKey).(int64)
	return providerID, ok
}

// WithProviderID кладёт ID провайдера в контекст (для тестов handlers)
func WithProviderID(ctx context.Context, providerID int64) context.Context {
	return context.WithValue(ctx, providerIDKey, providerID)
}
