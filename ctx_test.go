package bearer

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClaims(t *testing.T) {
	tests := []struct {
		name     string
		setupCtx func() context.Context
		wantOK   bool
	}{
		{
			name: "should return claims when present in context",
			setupCtx: func() context.Context {
				claims := &JWTClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject: "user123",
					},
					Uname: "user123",
				}
				return WithClaimsContext(context.Background(), claims)
			},
			wantOK: true,
		},
		{
			name: "should return false when no claims in context",
			setupCtx: func() context.Context {
				return context.Background()
			},
			wantOK: false,
		},
		{
			name: "should return false when context has wrong type",
			setupCtx: func() context.Context {
				return context.WithValue(context.Background(), claimsCtxKey, "not-a-claims-object")
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := GetClaims(tt.setupCtx())

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, claims)
				assert.Equal(t, "user123", claims.Username())
			} else {
				assert.Nil(t, claims)
			}
		})
	}
}

func TestGetRouterClaims(t *testing.T) {
	claims := &JWTClaims{Uname: "router-user"}

	t.Run("reads claims from default key", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["user"] = claims

		got, ok := GetRouterClaims(ctx, "")
		require.True(t, ok)
		assert.Equal(t, "router-user", got.Username())
	})

	t.Run("reads claims from custom key", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["identity"] = claims

		got, ok := GetRouterClaims(ctx, "identity")
		require.True(t, ok)
		assert.Equal(t, "router-user", got.Username())
	})

	t.Run("missing claims", func(t *testing.T) {
		ctx := router.NewMockContext()

		_, ok := GetRouterClaims(ctx, "")
		assert.False(t, ok)
	})

	t.Run("wrong type under key", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["user"] = "not-claims"

		_, ok := GetRouterClaims(ctx, "")
		assert.False(t, ok)
	})
}
