package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"field-service/internal/dto"
	"field-service/internal/entities"
	apperrors "field-service/pkg/errors"
)

// FetchOrder loads the order snapshot, including its FATs.
func (c *Client) FetchOrder(ctx context.Context, orderID int64) (*entities.Order, error) {
	endpoint := fmt.Sprintf("/os/%d", orderID)

	var wire dto.OrderWireDTO
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &wire); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("order %d: %w", orderID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	order, warnings := dto.OrderFromWire(wire)
	for _, w := range warnings {
		c.logger.Warn("order snapshot anomaly", zap.Int64("orderID", orderID), zap.String("detail", w))
	}
	return order, nil
}
