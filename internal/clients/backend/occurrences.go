package backend

import (
	"context"
	"net/http"

	"field-service/internal/dto"
)

// RegisterOccurrence sends one state-transition request for an order.
func (c *Client) RegisterOccurrence(ctx context.Context, req dto.OccurrenceRequest) (*dto.OccurrenceResponse, error) {
	var resp dto.OccurrenceResponse
	if err := c.do(ctx, http.MethodPost, "/occurrences", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
