package dto

type OrderActionDTO struct {
	Key                  string `json:"key"`
	Label                string `json:"label"`
	Ocorrencia           string `json:"ocorrencia"`
	AcceptsJustification bool   `json:"accepts_justification"`
	Busy                 bool   `json:"busy"`
}

type OrderActionsResponseDTO struct {
	OrderID         int64            `json:"order_id"`
	TechnicianID    int64            `json:"tecnico_id"`
	OrderStatus     string           `json:"order_status"`
	TechnicianState string           `json:"technician_state"`
	ActiveFatID     *int64           `json:"active_fat_id,omitempty"`
	Actions         []OrderActionDTO `json:"actions"`
}
