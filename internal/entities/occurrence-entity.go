package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// OccurrenceRecord is one journal row for an occurrence the API accepted.
type OccurrenceRecord struct {
	ID                  int64       `json:"id"`
	RequestID           uuid.UUID   `json:"request_id"`
	OrderID             int64       `json:"order_id"`
	TechnicianID        int64       `json:"technician_id"`
	Action              ActionKey   `json:"action"`
	Ocorrencia          string      `json:"ocorrencia"`
	DescricaoOcorrencia null.String `json:"descricao_ocorrencia"`
	Mensagem            string      `json:"mensagem"`
	CreatedAt           time.Time   `json:"created_at"`
}
