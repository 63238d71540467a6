package authz

import (
	"context"

	apperrors "field-service/pkg/errors"
	"field-service/pkg/utils"
)

// Gatekeeper reads the caller from the request context and applies CanDo.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Authorize returns the caller's user id when permission is granted on target.
func (g *Gatekeeper) Authorize(ctx context.Context, permission string, target interface{}) (int64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}

	authCtx := Context{
		ActorID:     actorID,
		Permissions: PermissionsForRoles(utils.GetRolesFromCtx(ctx)),
		Target:      target,
	}
	if !CanDo(permission, authCtx) {
		return actorID, apperrors.ErrForbidden
	}
	return actorID, nil
}
