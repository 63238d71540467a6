package orderflow

import "field-service/internal/entities"

// TechnicianState is the per technician/order position in the attendance cycle.
type TechnicianState int

const (
	StateNoActiveFat TechnicianState = iota
	StateTraveling
	StateInService
	StatePaused
)

func (s TechnicianState) String() string {
	switch s {
	case StateTraveling:
		return "traveling"
	case StateInService:
		return "in_service"
	case StatePaused:
		return "paused"
	}
	return "no_active_fat"
}

// facts are the guard inputs, computed once per evaluation.
type facts struct {
	noPendingIssue  bool
	released        bool
	openForConclude bool
	activeFat       *entities.FAT
	travelingFat    *entities.FAT
}

func (f facts) serviceAllowed() bool {
	return f.noPendingIssue && f.released
}

func (f facts) activeIs(statuses ...entities.FatStatus) bool {
	if f.activeFat == nil {
		return false
	}
	for _, s := range statuses {
		if f.activeFat.Status == s {
			return true
		}
	}
	return false
}

type rule struct {
	action entities.ActionKey
	guard  func(facts) bool
}

// rules is the transition table, in presentation order. StartService does not
// look at the traveling FAT while StartTravel does; that asymmetry is kept as observed.
var rules = []rule{
	{entities.ActionStartTravel, func(f facts) bool {
		return f.serviceAllowed() && f.activeFat == nil && f.travelingFat == nil
	}},
	{entities.ActionStartService, func(f facts) bool {
		return f.serviceAllowed() && f.activeFat == nil
	}},
	{entities.ActionPause, func(f facts) bool {
		return f.serviceAllowed() && f.activeIs(entities.FatInService)
	}},
	{entities.ActionResume, func(f facts) bool {
		return f.serviceAllowed() && f.activeIs(entities.FatPaused)
	}},
	{entities.ActionInterrupt, func(f facts) bool {
		return f.activeIs(entities.FatInService, entities.FatPaused)
	}},
	{entities.ActionCancel, func(f facts) bool {
		return f.activeIs(entities.FatInService, entities.FatPaused)
	}},
	{entities.ActionConclude, func(f facts) bool {
		return f.serviceAllowed() && f.openForConclude &&
			f.activeIs(entities.FatInService, entities.FatPaused) &&
			FatHasMandatoryData(f.activeFat)
	}},
}

func collect(order *entities.Order, technicianID int64) facts {
	return facts{
		noPendingIssue:  HasNoPendingIssue(order),
		released:        HasFinancialRelease(order),
		openForConclude: OrderNotReviewedOrConcluded(order),
		activeFat:       ActiveFatOf(order, technicianID),
		travelingFat:    TravelingFatOf(order, technicianID),
	}
}

// ResolveAvailableActions returns the actions the technician may request now,
// in fixed presentation order. A nil order yields no actions.
func ResolveAvailableActions(order *entities.Order, technicianID int64) []entities.ActionKey {
	f := collect(order, technicianID)
	actions := make([]entities.ActionKey, 0, len(rules))
	for _, r := range rules {
		if r.guard(f) {
			actions = append(actions, r.action)
		}
	}
	return actions
}

// IsAvailable reports whether action is currently legal for the technician.
func IsAvailable(order *entities.Order, technicianID int64, action entities.ActionKey) bool {
	for _, a := range ResolveAvailableActions(order, technicianID) {
		if a == action {
			return true
		}
	}
	return false
}

// Evaluation is the resolver output enriched for callers that render or audit it.
type Evaluation struct {
	OrderID      int64
	TechnicianID int64
	OrderStatus  entities.OrderStatus
	State        TechnicianState
	ActiveFat    *entities.FAT
	Actions      []entities.ActionKey
	Violations   []InvariantViolation
}

// Evaluate resolves the actions and reports the technician's state and any
// invariant violations found in the snapshot.
func Evaluate(order *entities.Order, technicianID int64) Evaluation {
	ev := Evaluation{
		TechnicianID: technicianID,
		Actions:      ResolveAvailableActions(order, technicianID),
		Violations:   CheckInvariants(order),
	}
	if order == nil {
		return ev
	}
	ev.OrderID = order.ID
	ev.OrderStatus = order.Status

	f := collect(order, technicianID)
	switch {
	case f.activeIs(entities.FatInService):
		ev.State = StateInService
	case f.activeIs(entities.FatPaused):
		ev.State = StatePaused
	case f.travelingFat != nil:
		ev.State = StateTraveling
	}
	if f.activeFat != nil {
		ev.ActiveFat = f.activeFat
	} else {
		ev.ActiveFat = f.travelingFat
	}
	return ev
}
