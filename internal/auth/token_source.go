// Пакет auth - молчаливое получение токена для API заказов и роли вызывающего.
// Проверка подписи токена - забота бэкенда; здесь токен только читается.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/table_orders/internal/domain"
	"github.com/Gunvolt24/table_orders/internal/ports"
	"github.com/Gunvolt24/table_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/table_orders/pkg/metrics"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var _ ports.TokenSource = (*SessionTokenSource)(nil)

// SessionTokenSource - сначала сессия вызывающего из контекста, затем запасной источник.
type SessionTokenSource struct {
	fallback oauth2.TokenSource
}

// NewSessionTokenSource - fallback может быть nil (только сессия вызывающего).
func NewSessionTokenSource(fallback oauth2.TokenSource) *SessionTokenSource {
	return &SessionTokenSource{fallback: fallback}
}

// Token - возвращает ErrAuthAcquisition, если токен получить не удалось.
func (s *SessionTokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := ctxmeta.SessionTokenFromContext(ctx); ok {
		return tok, nil
	}
	if s.fallback == nil {
		metrics.AuthAcquisitionFailures.Inc()
		return "", fmt.Errorf("%w: нет сессии и запасного источника", domain.ErrAuthAcquisition)
	}
	tok, err := s.fallback.Token()
	if err != nil {
		metrics.AuthAcquisitionFailures.Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrAuthAcquisition, err)
	}
	if !tok.Valid() {
		metrics.AuthAcquisitionFailures.Inc()
		return "", fmt.Errorf("%w: получен недействительный токен", domain.ErrAuthAcquisition)
	}
	return tok.AccessToken, nil
}

// ClientCredentials - параметры OAuth2 client credentials.
type ClientCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// NewClientCredentialsSource - кэширующий источник токена сервиса (продление без участия пользователя).
// Пустой TokenURL или ClientID - источника нет (nil).
func NewClientCredentialsSource(ctx context.Context, cc ClientCredentials) oauth2.TokenSource {
	if strings.TrimSpace(cc.TokenURL) == "" || strings.TrimSpace(cc.ClientID) == "" {
		return nil
	}
	conf := &clientcredentials.Config{
		ClientID:     cc.ClientID,
		ClientSecret: cc.ClientSecret,
		TokenURL:     cc.TokenURL,
		Scopes:       cc.Scopes,
	}
	return oauth2.ReuseTokenSource(nil, conf.TokenSource(ctx))
}
