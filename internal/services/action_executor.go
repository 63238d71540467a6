package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"field-service/internal/clients/backend"
	"field-service/internal/dto"
	"field-service/internal/entities"
	apperrors "field-service/pkg/errors"
)

// OccurrenceSender performs the single upstream mutation behind every action.
type OccurrenceSender interface {
	RegisterOccurrence(ctx context.Context, req dto.OccurrenceRequest) (*dto.OccurrenceResponse, error)
}

type ActionExecutorInterface interface {
	Execute(ctx context.Context, action entities.ActionKey, orderID int64, justification string) (string, error)
	IsBusy(ctx context.Context, orderID int64, action entities.ActionKey) bool
}

type ActionExecutor struct {
	sender  OccurrenceSender
	guard   InFlightGuard
	timeout time.Duration
	logger  *zap.Logger
}

func NewActionExecutor(sender OccurrenceSender, guard InFlightGuard, timeout time.Duration, logger *zap.Logger) *ActionExecutor {
	return &ActionExecutor{
		sender:  sender,
		guard:   guard,
		timeout: timeout,
		logger:  logger.Named("action_executor"),
	}
}

// BuildOccurrenceRequest maps an action to the API payload. The justification is
// sent trimmed, and only for actions that accept one.
func BuildOccurrenceRequest(action entities.ActionKey, orderID int64, justification string) dto.OccurrenceRequest {
	req := dto.OccurrenceRequest{
		IDOS:       orderID,
		Ocorrencia: action.Occurrence(),
	}
	if action.AcceptsJustification() {
		if trimmed := strings.TrimSpace(justification); trimmed != "" {
			req.DescricaoOcorrencia = &trimmed
		}
	}
	return req
}

// Execute sends exactly one occurrence and returns the API's confirmation message.
// It never retries and never touches local order state; callers re-fetch.
func (e *ActionExecutor) Execute(ctx context.Context, action entities.ActionKey, orderID int64, justification string) (string, error) {
	if !action.Valid() {
		return "", apperrors.ErrInvalidAction
	}

	release, err := e.guard.Acquire(ctx, orderID, action)
	if err != nil {
		if errors.Is(err, apperrors.ErrActionInFlight) {
			e.logger.Info("action already in flight", zap.Int64("orderID", orderID), zap.String("action", string(action)))
			return "", err
		}
		e.logger.Error("in-flight guard unavailable", zap.Error(err))
		return "", apperrors.NewHttpError(http.StatusServiceUnavailable, apperrors.ErrExecuteFailed.Error(), err, nil)
	}
	defer release()

	// The mutation completes even if the caller goes away.
	callCtx := context.WithoutCancel(ctx)
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, e.timeout)
		defer cancel()
	}

	req := BuildOccurrenceRequest(action, orderID, justification)
	resp, err := e.sender.RegisterOccurrence(callCtx, req)
	if err != nil {
		return "", e.mapError(err, orderID, action)
	}

	e.logger.Info("occurrence registered",
		zap.Int64("orderID", orderID),
		zap.String("action", string(action)),
		zap.String("ocorrencia", req.Ocorrencia),
	)
	return resp.Mensagem, nil
}

func (e *ActionExecutor) IsBusy(ctx context.Context, orderID int64, action entities.ActionKey) bool {
	return e.guard.IsBusy(ctx, orderID, action)
}

// mapError logs the failed call and converts it with upstreamError.
func (e *ActionExecutor) mapError(err error, orderID int64, action entities.ActionKey) error {
	fields := []zap.Field{zap.Int64("orderID", orderID), zap.String("action", string(action)), zap.Error(err)}

	var apiErr *backend.Error
	if errors.As(err, &apiErr) && apiErr.HasMessage() {
		e.logger.Warn("occurrence rejected by API", fields...)
	} else {
		e.logger.Error("occurrence request failed", fields...)
	}
	return upstreamError(err, apperrors.ErrExecuteFailed)
}
