package entities

import "time"

// OrderStatus is the service order (OS) lifecycle state.
type OrderStatus int

const (
	OrderStatusUnknown   OrderStatus = 0
	OrderStatusOpen      OrderStatus = 1
	OrderStatusAssigned  OrderStatus = 2
	OrderStatusTraveling OrderStatus = 3
	OrderStatusInService OrderStatus = 4
	OrderStatusPaused    OrderStatus = 5
	OrderStatusInReview  OrderStatus = 6
	OrderStatusConcluded OrderStatus = 7
	OrderStatusCancelled OrderStatus = 8
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusUnknown:   "unknown",
	OrderStatusOpen:      "open",
	OrderStatusAssigned:  "assigned",
	OrderStatusTraveling: "traveling",
	OrderStatusInService: "in_service",
	OrderStatusPaused:    "paused",
	OrderStatusInReview:  "in_review",
	OrderStatusConcluded: "concluded",
	OrderStatusCancelled: "cancelled",
}

// ParseOrderStatus translates the wire code. Unknown codes map to
// OrderStatusUnknown and ok=false.
func ParseOrderStatus(code int) (OrderStatus, bool) {
	s := OrderStatus(code)
	if s == OrderStatusUnknown {
		return OrderStatusUnknown, false
	}
	if _, ok := orderStatusNames[s]; !ok {
		return OrderStatusUnknown, false
	}
	return s, true
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return orderStatusNames[OrderStatusUnknown]
}

// IsTerminal reports whether no further occurrence can move the order.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConcluded || s == OrderStatusCancelled
}

// IsGate reports whether the order is parked for review.
func (s OrderStatus) IsGate() bool {
	return s == OrderStatusInReview
}

type FinancialRelease struct {
	Released           bool
	ReleasedByUserID   *int64
	ReleasedByUserName *string
	ReleasedAt         *time.Time
}

type Customer struct {
	ID   int64
	Name string
}

type Machine struct {
	ID           int64
	Model        string
	SerialNumber string
}

type Contact struct {
	Name  string
	Phone string
	Email string
}

// Order is an immutable snapshot of a service order as returned by the API.
type Order struct {
	ID               int64
	Status           OrderStatus
	PendingIssueID   *int64
	FinancialRelease *FinancialRelease
	Customer         *Customer
	Machine          *Machine
	Contact          *Contact
	Fats             []FAT
}
