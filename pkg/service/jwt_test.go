package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "field-service/pkg/errors"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens(42, []string{"tecnico_proprio"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, []string{"tecnico_proprio"}, claims.Roles)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other", time.Hour, time.Hour, zap.NewNop())
		access, _, err := other.GenerateTokens(1, nil)
		require.NoError(t, err)

		_, err = svc.ValidateToken(access)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &JwtCustomClaim{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
