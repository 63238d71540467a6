package listeners

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"field-service/internal/entities"
	"field-service/internal/events"
	"field-service/pkg/eventbus"
	"field-service/pkg/types"
)

type memoryJournal struct {
	mu      sync.Mutex
	records []entities.OccurrenceRecord
	err     error
}

func (m *memoryJournal) Create(ctx context.Context, record *entities.OccurrenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryJournal) List(ctx context.Context, filter types.Filter) ([]entities.OccurrenceRecord, uint64, error) {
	return m.records, uint64(len(m.records)), nil
}

func (m *memoryJournal) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func TestJournalListenerPersistsPublishedOccurrence(t *testing.T) {
	repo := &memoryJournal{}
	bus := eventbus.New(zap.NewNop())
	NewJournalListener(repo, zap.NewNop()).Register(bus)

	just := "aguardando cliente"
	requestID := uuid.New()
	bus.Publish(context.Background(), events.OccurrenceRegisteredEvent{
		RequestID:     requestID,
		OrderID:       10,
		TechnicianID:  12,
		Action:        entities.ActionPause,
		Justificativa: &just,
		Mensagem:      "ok",
	})
	bus.Wait()

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, requestID, rec.RequestID)
	assert.Equal(t, "pausar atendimento", rec.Ocorrencia)
	assert.True(t, rec.DescricaoOcorrencia.Valid)
	assert.Equal(t, just, rec.DescricaoOcorrencia.String)
}

func TestJournalListenerWithoutJustification(t *testing.T) {
	repo := &memoryJournal{}
	l := NewJournalListener(repo, zap.NewNop())

	err := l.handleOccurrenceRegistered(context.Background(), events.OccurrenceRegisteredEvent{
		RequestID: uuid.New(), OrderID: 10, TechnicianID: 12, Action: entities.ActionStartTravel,
	})
	require.NoError(t, err)
	assert.False(t, repo.records[0].DescricaoOcorrencia.Valid)
}

func TestJournalListenerReportsRepositoryError(t *testing.T) {
	repo := &memoryJournal{err: errors.New("db down")}
	l := NewJournalListener(repo, zap.NewNop())

	err := l.handleOccurrenceRegistered(context.Background(), events.OccurrenceRegisteredEvent{Action: entities.ActionCancel})
	assert.Error(t, err)
}
