package ports

import "context"

// TokenSource - молчаливое получение bearer-токена у провайдера идентичности.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
