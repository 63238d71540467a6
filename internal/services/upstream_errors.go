package services

import (
	"errors"
	"fmt"
	"net/http"

	"field-service/internal/clients/backend"
	apperrors "field-service/pkg/errors"
)

// upstreamError turns a failed API call into an HttpError. The API's own message
// is shown verbatim; without one the user gets fallback's text. Client errors keep
// their status so the UI can react to 401/403, everything else is a 502.
func upstreamError(err error, fallback error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	var apiErr *backend.Error
	if !errors.As(err, &apiErr) {
		return apperrors.NewHttpError(http.StatusBadGateway, fallback.Error(), fmt.Errorf("%w: %w", fallback, err), nil)
	}

	if apiErr.HasMessage() {
		code := apiErr.StatusCode
		if code < 400 || code > 499 {
			code = http.StatusBadGateway
		}
		return apperrors.NewHttpError(code, apiErr.Message, err, nil)
	}

	code := http.StatusBadGateway
	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
		code = apiErr.StatusCode
	}
	return apperrors.NewHttpError(code, fallback.Error(), fmt.Errorf("%w: %w", fallback, err), nil)
}
