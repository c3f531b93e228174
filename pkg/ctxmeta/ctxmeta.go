// Пакет ctxmeta - нейтральный слой для метаданных запроса в context.Context:
// request_id для логов и токен сессии вызывающего для шлюза API заказов.
// HTTP-слой, логгер и шлюз зависят от этого пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

// HeaderRequestID - заголовок request_id: входящий HTTP, запросы к API заказов, сообщения ленты.
const HeaderRequestID = "X-Request-ID"

const (
	// Ключи контекста (неэкспортируемый тип - чтобы избежать коллизий).
	KeyRequestID    ctxKey = "request_id"
	KeySessionToken ctxKey = "session_token"
)

// WithRequestID кладёт request_id в контекст (если пусто - ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithSessionToken кладёт bearer-токен вызывающего (его сессию у провайдера идентичности).
func WithSessionToken(ctx context.Context, token string) context.Context {
	return withString(ctx, KeySessionToken, token)
}

// SessionTokenFromContext достаёт токен сессии вызывающего.
func SessionTokenFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeySessionToken)
}

// WithoutCancel - контекст для фоновой работы после ответа (request_id и сессия сохраняются).
func WithoutCancel(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}

func withString(ctx context.Context, key ctxKey, value string) context.Context {
	if ctx == nil || value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
