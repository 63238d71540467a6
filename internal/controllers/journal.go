package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"field-service/internal/services"
	"field-service/pkg/utils"
)

type JournalController struct {
	service services.JournalServiceInterface
	logger  *zap.Logger
}

func NewJournalController(service services.JournalServiceInterface, logger *zap.Logger) *JournalController {
	return &JournalController{service: service, logger: logger}
}

func (c *JournalController) ListOccurrences(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.service.ListOccurrences(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "occurrences", http.StatusOK, total)
}

func (c *JournalController) ExportOccurrences(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	f, err := c.service.ExportOccurrences(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("ocorrencias_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
