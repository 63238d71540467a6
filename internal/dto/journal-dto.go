package dto

type OccurrenceRecordDTO struct {
	ID                  int64   `json:"id"`
	RequestID           string  `json:"request_id"`
	OrderID             int64   `json:"order_id"`
	TechnicianID        int64   `json:"tecnico_id"`
	Action              string  `json:"action"`
	Ocorrencia          string  `json:"ocorrencia"`
	DescricaoOcorrencia *string `json:"descricao_ocorrencia,omitempty"`
	Mensagem            string  `json:"mensagem"`
	CreatedAt           string  `json:"created_at"`
}
