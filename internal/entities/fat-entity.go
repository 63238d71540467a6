package entities

// FatStatus is the lifecycle state of a technician's attendance form.
type FatStatus int

const (
	FatOther FatStatus = iota
	FatTraveling
	FatInService
	FatPaused
)

// Wire codes used by the field-service API for statusFat.
const (
	FatStatusCodeTraveling = "3"
	FatStatusCodeInService = "4"
	FatStatusCodePaused    = "5"
)

// ParseFatStatus translates the wire string. Codes the action engine does not
// care about map to FatOther.
func ParseFatStatus(code string) FatStatus {
	switch code {
	case FatStatusCodeTraveling:
		return FatTraveling
	case FatStatusCodeInService:
		return FatInService
	case FatStatusCodePaused:
		return FatPaused
	}
	return FatOther
}

func (s FatStatus) String() string {
	switch s {
	case FatTraveling:
		return "traveling"
	case FatInService:
		return "in_service"
	case FatPaused:
		return "paused"
	}
	return "other"
}

// IsActive covers both in-service and paused forms.
func (s FatStatus) IsActive() bool {
	return s == FatInService || s == FatPaused
}

type Technician struct {
	ID                  int64
	Name                string
	TecnicoProprio      bool
	TecnicoTerceirizado bool
}

// FAT (ficha de atendimento técnico) is one technician's visit record on an order.
type FAT struct {
	ID                int64
	Technician        *Technician
	Status            FatStatus
	RawStatus         string
	DescricaoProblema string
	SolucaoEncontrada string
	Observacoes       string
	NumeroCiclos      int
}

// BelongsTo reports whether the form was opened by the given technician.
func (f *FAT) BelongsTo(technicianID int64) bool {
	return f != nil && f.Technician != nil && f.Technician.ID == technicianID
}
