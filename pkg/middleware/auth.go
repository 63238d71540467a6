package middleware

import (
	"context"
	"strings"

	"field-service/pkg/contextkeys"
	apperrors "field-service/pkg/errors"
	"field-service/pkg/service"
	"field-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth validates the bearer token and stores the user id, roles and the raw
// token in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: empty Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}
		tokenString := parts[1]

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: refresh token used for access")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRolesKey, claims.Roles)
		ctx = context.WithValue(ctx, contextkeys.AuthTokenKey, tokenString)
		c.SetRequest(c.Request().WithContext(ctx))

		m.logger.Debug("AuthMiddleware: user authenticated", zap.Int64("userID", claims.UserID))
		return next(c)
	}
}
