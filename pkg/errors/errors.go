package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")

	// Authorization
	ErrEmptyAuthHeader   = errors.New("authorization header is missing")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")

	// Context
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")
	ErrInvalidUserID           = errors.New("invalid user id")

	// Order actions
	ErrInvalidAction      = errors.New("unknown action")
	ErrActionNotAvailable = errors.New("action is not available for this order")
	ErrActionInFlight     = errors.New("action is already being executed")
	ErrExecuteFailed      = errors.New("failed to execute action, try again")
	ErrFetchFailed        = errors.New("failed to load order, try again")

	// Common
	ErrNotFound   = errors.New("record not found")
	ErrBadRequest = errors.New("bad request")
)

// HttpError carries a user-presentable message together with the HTTP status
// it should be rendered with. Err keeps the technical cause for the logs.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusFor maps the sentinel errors above to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidAction), errors.Is(err, ErrInvalidUserID):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmptyAuthHeader), errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenIsNotAccess), errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrUserIDNotFoundInContext):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrActionNotAvailable), errors.Is(err, ErrActionInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrExecuteFailed), errors.Is(err, ErrFetchFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
