package ports

import "context"

// Logger - контракт логгера для слоёв приложения; request_id/trace_id берутся из ctx.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any) // Debugf - трассировка кэша и шлюза.
	Infof(ctx context.Context, format string, args ...any)  // Infof - информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf - поглощённые ошибки.
	Errorf(ctx context.Context, format string, args ...any) // Errorf - ошибки, ушедшие вызывающему.
}
