package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"field-service/pkg/contextkeys"
	apperrors "field-service/pkg/errors"
)

func authCtx(actorID int64, roles ...string) Context {
	return Context{ActorID: actorID, Permissions: PermissionsForRoles(roles)}
}

func TestTechnicianActsOnlyAsThemselves(t *testing.T) {
	ctx := authCtx(12, RoleTecnicoProprio)

	ctx.Target = &TechnicianTarget{OrderID: 1, TechnicianID: 12}
	assert.True(t, CanDo(OrdersActionsView, ctx))
	assert.True(t, CanDo(OrdersActionsExecute, ctx))

	ctx.Target = &TechnicianTarget{OrderID: 1, TechnicianID: 13}
	assert.False(t, CanDo(OrdersActionsView, ctx))
	assert.False(t, CanDo(OrdersActionsExecute, ctx))
}

func TestOutsourcedTechnicianHasSameGrants(t *testing.T) {
	ctx := authCtx(30, RoleTecnicoTerceirizado)
	ctx.Target = &TechnicianTarget{OrderID: 1, TechnicianID: 30}
	assert.True(t, CanDo(OrdersActionsExecute, ctx))
	assert.False(t, CanDo(OccurrencesView, ctx))
}

func TestAdminViewsButDoesNotExecute(t *testing.T) {
	ctx := authCtx(1, RoleAdmin)
	ctx.Target = &TechnicianTarget{OrderID: 1, TechnicianID: 12}

	assert.True(t, CanDo(OrdersActionsView, ctx))
	assert.False(t, CanDo(OrdersActionsExecute, ctx))
	assert.True(t, CanDo(OccurrencesView, authCtx(1, RoleAdmin)))
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	assert.Empty(t, PermissionsForRoles([]string{"guest"}))
	assert.False(t, CanDo(OrdersActionsView, authCtx(5, "guest")))
}

func TestGatekeeperAuthorize(t *testing.T) {
	g := NewGatekeeper()

	_, err := g.Authorize(context.Background(), OrdersActionsView, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, int64(12))
	ctx = context.WithValue(ctx, contextkeys.UserRolesKey, []string{RoleTecnicoProprio})

	id, err := g.Authorize(ctx, OrdersActionsExecute, &TechnicianTarget{OrderID: 9, TechnicianID: 12})
	assert.NoError(t, err)
	assert.EqualValues(t, 12, id)

	_, err = g.Authorize(ctx, OccurrencesView, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
