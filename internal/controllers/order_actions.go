package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"field-service/internal/dto"
	"field-service/internal/services"
	apperrors "field-service/pkg/errors"
	"field-service/pkg/utils"
)

type OrderActionController struct {
	service services.OrderActionServiceInterface
	logger  *zap.Logger
}

func NewOrderActionController(service services.OrderActionServiceInterface, logger *zap.Logger) *OrderActionController {
	return &OrderActionController{service: service, logger: logger}
}

// GetAvailableActions handles GET /orders/:id/actions. Admins pass tecnico_id to see another technician's view.
func (c *OrderActionController) GetAvailableActions(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var technicianID *int64
	if raw := ctx.QueryParam("tecnico_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "invalid tecnico_id", err, nil), c.logger)
		}
		technicianID = &id
	}

	res, err := c.service.GetAvailableActions(ctx.Request().Context(), orderID, technicianID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "available actions", http.StatusOK)
}

func (c *OrderActionController) ExecuteAction(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ExecuteActionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.ExecuteAction(ctx.Request().Context(), orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, res.Mensagem, http.StatusOK)
}

func parseOrderID(ctx echo.Context) (int64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "invalid order id", err, map[string]string{"id": raw})
	}
	return id, nil
}
