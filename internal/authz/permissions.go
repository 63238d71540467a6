// internal/authz/permissions.go
package authz

// Roles carried in the JWT "roles" claim.
const (
	RoleAdmin               = "admin"
	RoleTecnicoProprio      = "tecnico_proprio"
	RoleTecnicoTerceirizado = "tecnico_terceirizado"
)

const (
	OrdersActionsView    = "orders:actions:view"
	OrdersActionsExecute = "orders:actions:execute"
	OccurrencesView      = "occurrences:view"

	// ScopeAll lifts the "act only as yourself" restriction.
	ScopeAll = "scope:all"
	ScopeOwn = "scope:own"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {
		OrdersActionsView,
		OccurrencesView,
		ScopeAll,
	},
	RoleTecnicoProprio: {
		OrdersActionsView,
		OrdersActionsExecute,
		ScopeOwn,
	},
	RoleTecnicoTerceirizado: {
		OrdersActionsView,
		OrdersActionsExecute,
		ScopeOwn,
	},
}

// PermissionsForRoles unions the permissions of every known role. Unknown roles grant nothing.
func PermissionsForRoles(roles []string) map[string]bool {
	perms := make(map[string]bool)
	for _, role := range roles {
		for _, p := range rolePermissions[role] {
			perms[p] = true
		}
	}
	return perms
}
