// pkg/utils/context_utils.go

package utils

import (
	"context"

	"field-service/pkg/contextkeys"
	apperrors "field-service/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(int64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	if userID <= 0 {
		return 0, apperrors.ErrInvalidUserID
	}
	return userID, nil
}

func GetRolesFromCtx(ctx context.Context) []string {
	roles, _ := ctx.Value(contextkeys.UserRolesKey).([]string)
	return roles
}

// GetAuthTokenFromCtx returns the caller's raw bearer token so it can be
// forwarded to the field-service API.
func GetAuthTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(contextkeys.AuthTokenKey).(string)
	return token
}

func GetRequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}
