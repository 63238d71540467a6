package authz

import "strings"

// TechnicianTarget is an order seen through one technician's eyes.
type TechnicianTarget struct {
	OrderID      int64
	TechnicianID int64
}

type Context struct {
	ActorID           int64
	Permissions       map[string]bool
	Target            interface{}
	CurrentPermission string
}

func (c *Context) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions[permission]
}

func getAction(permission string) string {
	parts := strings.Split(permission, ":")
	return parts[len(parts)-1]
}

func canActAsTechnician(ctx Context, target *TechnicianTarget) bool {
	if target.TechnicianID == ctx.ActorID && ctx.HasPermission(ScopeOwn) {
		return true
	}
	// Admins may look at any technician's view but never mutate on their behalf.
	if getAction(ctx.CurrentPermission) == "view" && ctx.HasPermission(ScopeAll) {
		return true
	}
	return false
}

func CanDo(permission string, ctx Context) bool {
	ctx.CurrentPermission = permission

	if !ctx.HasPermission(permission) {
		return false
	}

	if ctx.Target == nil {
		return true
	}

	switch target := ctx.Target.(type) {
	case *TechnicianTarget:
		return canActAsTechnician(ctx, target)
	}

	return true
}
