package contextkeys

type contextKey string

const (
	UserIDKey    contextKey = "UserID"
	UserRolesKey contextKey = "UserRoles"
	AuthTokenKey contextKey = "AuthToken"
	RequestIDKey contextKey = "RequestID"
)
