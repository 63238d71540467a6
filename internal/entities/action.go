package entities

// ActionKey identifies an occurrence a technician can request on an order.
type ActionKey string

const (
	ActionStartTravel  ActionKey = "start_travel"
	ActionStartService ActionKey = "start_service"
	ActionPause        ActionKey = "pause"
	ActionResume       ActionKey = "resume"
	ActionInterrupt    ActionKey = "interrupt"
	ActionCancel       ActionKey = "cancel"
	ActionConclude     ActionKey = "conclude"
)

// AllActions lists every action in presentation order.
var AllActions = []ActionKey{
	ActionStartTravel,
	ActionStartService,
	ActionPause,
	ActionResume,
	ActionInterrupt,
	ActionCancel,
	ActionConclude,
}

type actionMeta struct {
	occurrence           string
	label                string
	acceptsJustification bool
}

// The occurrence strings are the API's wire contract and must not change.
var actionTable = map[ActionKey]actionMeta{
	ActionStartTravel:  {occurrence: "iniciar deslocamento", label: "Iniciar deslocamento"},
	ActionStartService: {occurrence: "iniciar atendimento", label: "Iniciar atendimento"},
	ActionPause:        {occurrence: "pausar atendimento", label: "Pausar atendimento", acceptsJustification: true},
	ActionResume:       {occurrence: "retomar atendimento", label: "Retomar atendimento", acceptsJustification: true},
	ActionInterrupt:    {occurrence: "interromper atendimento", label: "Interromper atendimento", acceptsJustification: true},
	ActionCancel:       {occurrence: "cancelar atendimento", label: "Cancelar atendimento", acceptsJustification: true},
	ActionConclude:     {occurrence: "concluir os", label: "Concluir OS", acceptsJustification: true},
}

func ParseActionKey(s string) (ActionKey, bool) {
	k := ActionKey(s)
	_, ok := actionTable[k]
	return k, ok
}

func (k ActionKey) Valid() bool {
	_, ok := actionTable[k]
	return ok
}

// Occurrence returns the "ocorrencia" value sent to the API.
func (k ActionKey) Occurrence() string {
	return actionTable[k].occurrence
}

func (k ActionKey) Label() string {
	return actionTable[k].label
}

// AcceptsJustification reports whether a free-text justification may be sent with the action.
func (k ActionKey) AcceptsJustification() bool {
	return actionTable[k].acceptsJustification
}

func (k ActionKey) String() string {
	return string(k)
}
