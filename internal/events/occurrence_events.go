package events

import (
	"time"

	"github.com/google/uuid"

	"field-service/internal/entities"
)

const OccurrenceRegistered = "occurrence.registered"

// OccurrenceRegisteredEvent is published after the API accepted an occurrence.
type OccurrenceRegisteredEvent struct {
	RequestID     uuid.UUID
	OrderID       int64
	TechnicianID  int64
	Action        entities.ActionKey
	Justificativa *string
	Mensagem      string
	OccurredAt    time.Time
}

func (e OccurrenceRegisteredEvent) Name() string {
	return OccurrenceRegistered
}
