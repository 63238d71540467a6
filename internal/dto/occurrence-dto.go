package dto

// OccurrenceRequest is the body of POST /occurrences on the field-service API.
type OccurrenceRequest struct {
	IDOS                int64   `json:"id_os"`
	Ocorrencia          string  `json:"ocorrencia"`
	DescricaoOcorrencia *string `json:"descricao_ocorrencia,omitempty"`
}

type OccurrenceResponse struct {
	Mensagem string `json:"mensagem"`
}

// ExecuteActionDTO is what the UI posts to run one action.
type ExecuteActionDTO struct {
	Action        string `json:"action" validate:"required,action_key"`
	Justificativa string `json:"justificativa,omitempty" validate:"omitempty,max=2000"`
}

type ExecuteActionResponseDTO struct {
	OrderID    int64  `json:"order_id"`
	Action     string `json:"action"`
	Ocorrencia string `json:"ocorrencia"`
	Mensagem   string `json:"mensagem"`
}
