package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Role - роль вызывающего, определяет доступ к действиям персонала.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleKitchen Role = "kitchen" // Pizzaiolo - продвигает заказы по кухне
	RoleWaiter  Role = "waiter"  // Garcom - правит заказы
)

// Названия ролей в claims провайдера идентичности.
const (
	claimKitchen = "Pizzaiolo"
	claimWaiter  = "Garcom"
)

// IsStaff - кухня или официант.
func (r Role) IsStaff() bool { return r == RoleKitchen || r == RoleWaiter }

// RoleFromToken - роль из claim "roles" без проверки подписи.
// Разобранный токен без ролей - кухня; пустой или нечитаемый токен - гость.
func RoleFromToken(raw string) Role {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RoleGuest
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return RoleGuest
	}

	roles := rolesClaim(claims["roles"])
	for _, r := range roles {
		if r == claimKitchen {
			return RoleKitchen
		}
	}
	for _, r := range roles {
		if r == claimWaiter {
			return RoleWaiter
		}
	}
	return RoleKitchen
}

// BearerToken - токен из заголовка Authorization ("" если схема не Bearer).
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func rolesClaim(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	}
	return nil
}
