package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"field-service/internal/authz"
	"field-service/internal/dto"
	"field-service/internal/entities"
	"field-service/internal/events"
	"field-service/internal/orderflow"
	apperrors "field-service/pkg/errors"
	"field-service/pkg/eventbus"
	"field-service/pkg/utils"
)

// OrderFetcher loads a fresh order snapshot.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID int64) (*entities.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type OrderActionServiceInterface interface {
	// GetAvailableActions evaluates the order for technicianID, or for the caller when it is nil.
	GetAvailableActions(ctx context.Context, orderID int64, technicianID *int64) (*dto.OrderActionsResponseDTO, error)
	ExecuteAction(ctx context.Context, orderID int64, payload dto.ExecuteActionDTO) (*dto.ExecuteActionResponseDTO, error)
}

type OrderActionService struct {
	orders     OrderFetcher
	executor   ActionExecutorInterface
	publisher  EventPublisher
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewOrderActionService(
	orders OrderFetcher,
	executor ActionExecutorInterface,
	publisher EventPublisher,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) OrderActionServiceInterface {
	return &OrderActionService{
		orders:     orders,
		executor:   executor,
		publisher:  publisher,
		gatekeeper: gatekeeper,
		logger:     logger.Named("order_action_service"),
	}
}

func (s *OrderActionService) GetAvailableActions(ctx context.Context, orderID int64, technicianID *int64) (*dto.OrderActionsResponseDTO, error) {
	callerID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	techID := callerID
	if technicianID != nil {
		techID = *technicianID
	}

	target := &authz.TechnicianTarget{OrderID: orderID, TechnicianID: techID}
	if _, err := s.gatekeeper.Authorize(ctx, authz.OrdersActionsView, target); err != nil {
		s.logger.Warn("actions view denied", zap.Int64("userID", callerID), zap.Int64("technicianID", techID))
		return nil, err
	}

	order, err := s.orders.FetchOrder(ctx, orderID)
	if err != nil {
		s.logger.Warn("order fetch failed", zap.Int64("orderID", orderID), zap.Error(err))
		return nil, upstreamError(err, apperrors.ErrFetchFailed)
	}

	ev := orderflow.Evaluate(order, techID)
	s.logViolations(ev)

	return s.toResponse(ctx, ev), nil
}

func (s *OrderActionService) ExecuteAction(ctx context.Context, orderID int64, payload dto.ExecuteActionDTO) (*dto.ExecuteActionResponseDTO, error) {
	action, ok := entities.ParseActionKey(payload.Action)
	if !ok {
		return nil, apperrors.ErrInvalidAction
	}

	// Occurrences are always registered as the caller.
	techID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	target := &authz.TechnicianTarget{OrderID: orderID, TechnicianID: techID}
	if _, err := s.gatekeeper.Authorize(ctx, authz.OrdersActionsExecute, target); err != nil {
		s.logger.Warn("action execution denied", zap.Int64("userID", techID), zap.Int64("orderID", orderID))
		return nil, err
	}

	// The UI may hold a stale snapshot, so eligibility is checked against a fresh one.
	order, err := s.orders.FetchOrder(ctx, orderID)
	if err != nil {
		s.logger.Warn("order fetch failed", zap.Int64("orderID", orderID), zap.Error(err))
		return nil, upstreamError(err, apperrors.ErrExecuteFailed)
	}
	ev := orderflow.Evaluate(order, techID)
	s.logViolations(ev)
	if !slices.Contains(ev.Actions, action) {
		s.logger.Info("action not available on current snapshot",
			zap.Int64("orderID", orderID),
			zap.Int64("technicianID", techID),
			zap.String("action", string(action)),
			zap.String("orderStatus", ev.OrderStatus.String()),
		)
		return nil, fmt.Errorf("%s on order %d: %w", action, orderID, apperrors.ErrActionNotAvailable)
	}

	message, err := s.executor.Execute(ctx, action, orderID, payload.Justificativa)
	if err != nil {
		return nil, err
	}

	req := BuildOccurrenceRequest(action, orderID, payload.Justificativa)
	s.publisher.Publish(ctx, events.OccurrenceRegisteredEvent{
		RequestID:     journalRequestID(ctx),
		OrderID:       orderID,
		TechnicianID:  techID,
		Action:        action,
		Justificativa: req.DescricaoOcorrencia,
		Mensagem:      message,
		OccurredAt:    time.Now(),
	})

	return &dto.ExecuteActionResponseDTO{
		OrderID:    orderID,
		Action:     string(action),
		Ocorrencia: req.Ocorrencia,
		Mensagem:   message,
	}, nil
}

func (s *OrderActionService) toResponse(ctx context.Context, ev orderflow.Evaluation) *dto.OrderActionsResponseDTO {
	resp := &dto.OrderActionsResponseDTO{
		OrderID:         ev.OrderID,
		TechnicianID:    ev.TechnicianID,
		OrderStatus:     ev.OrderStatus.String(),
		TechnicianState: ev.State.String(),
		Actions:         make([]dto.OrderActionDTO, 0, len(ev.Actions)),
	}
	if ev.ActiveFat != nil {
		resp.ActiveFatID = utils.ToPtr(ev.ActiveFat.ID)
	}
	for _, action := range ev.Actions {
		resp.Actions = append(resp.Actions, dto.OrderActionDTO{
			Key:                  string(action),
			Label:                action.Label(),
			Ocorrencia:           action.Occurrence(),
			AcceptsJustification: action.AcceptsJustification(),
			Busy:                 s.executor.IsBusy(ctx, ev.OrderID, action),
		})
	}
	return resp
}

func (s *OrderActionService) logViolations(ev orderflow.Evaluation) {
	for _, v := range ev.Violations {
		s.logger.Warn("order snapshot violates invariant",
			zap.Int64("orderID", v.OrderID),
			zap.Int64("technicianID", v.TechnicianID),
			zap.Int64s("fatIDs", v.FatIDs),
			zap.Error(v.Err),
		)
	}
}

// journalRequestID keys the journal row on the caller's X-Request-Id, so a replayed
// request is journaled once. Ids that are not UUIDs are hashed into one.
func journalRequestID(ctx context.Context) uuid.UUID {
	raw := utils.GetRequestIDFromCtx(ctx)
	if raw == "" {
		return uuid.New()
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw))
}
