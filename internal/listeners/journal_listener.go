package listeners

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"field-service/internal/entities"
	"field-service/internal/events"
	"field-service/internal/repositories"
	"field-service/pkg/eventbus"
)

// JournalListener writes every registered occurrence to the local journal.
type JournalListener struct {
	repo   repositories.OccurrenceJournalRepositoryInterface
	logger *zap.Logger
}

func NewJournalListener(repo repositories.OccurrenceJournalRepositoryInterface, logger *zap.Logger) *JournalListener {
	return &JournalListener{repo: repo, logger: logger.Named("journal_listener")}
}

func (l *JournalListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OccurrenceRegistered, l.handleOccurrenceRegistered)
	l.logger.Info("subscribed", zap.String("event", events.OccurrenceRegistered))
}

func (l *JournalListener) handleOccurrenceRegistered(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.OccurrenceRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", e, e.Name())
	}

	record := &entities.OccurrenceRecord{
		RequestID:           event.RequestID,
		OrderID:             event.OrderID,
		TechnicianID:        event.TechnicianID,
		Action:              event.Action,
		Ocorrencia:          event.Action.Occurrence(),
		DescricaoOcorrencia: null.StringFromPtr(event.Justificativa),
		Mensagem:            event.Mensagem,
	}
	if err := l.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to journal occurrence for order %d: %w", event.OrderID, err)
	}

	l.logger.Debug("occurrence journaled",
		zap.Int64("orderID", event.OrderID),
		zap.String("action", string(event.Action)),
		zap.Int64("journalID", record.ID),
	)
	return nil
}
