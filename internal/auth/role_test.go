package auth_test

import (
	"testing"

	"github.com/Gunvolt24/table_orders/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestRoleFromToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  auth.Role
	}{
		{"empty", "", auth.RoleGuest},
		{"garbage", "not-a-jwt", auth.RoleGuest},
		{"kitchen", signed(t, jwt.MapClaims{"roles": []string{"Pizzaiolo"}}), auth.RoleKitchen},
		{"waiter", signed(t, jwt.MapClaims{"roles": []string{"Garcom"}}), auth.RoleWaiter},
		{"both_prefers_kitchen", signed(t, jwt.MapClaims{"roles": []string{"Garcom", "Pizzaiolo"}}), auth.RoleKitchen},
		{"single_string_claim", signed(t, jwt.MapClaims{"roles": "Garcom"}), auth.RoleWaiter},
		{"no_roles_defaults_kitchen", signed(t, jwt.MapClaims{"sub": "u1"}), auth.RoleKitchen},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, auth.RoleFromToken(tt.token))
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abc", auth.BearerToken("Bearer abc"))
	require.Equal(t, "abc", auth.BearerToken("bearer  abc "))
	require.Equal(t, "", auth.BearerToken("Basic abc"))
	require.Equal(t, "", auth.BearerToken("Bearer "))
	require.Equal(t, "", auth.BearerToken(""))
}

func TestRole_IsStaff(t *testing.T) {
	t.Parallel()

	require.True(t, auth.RoleKitchen.IsStaff())
	require.True(t, auth.RoleWaiter.IsStaff())
	require.False(t, auth.RoleGuest.IsStaff())
}
