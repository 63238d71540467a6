package orderflow

import (
	"errors"
	"fmt"

	"field-service/internal/entities"
)

var ErrMultipleActiveFats = errors.New("technician has more than one active FAT on the order")

// InvariantViolation describes a snapshot the API should never produce.
type InvariantViolation struct {
	OrderID      int64
	TechnicianID int64
	FatIDs       []int64
	Err          error
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("order %d, technician %d, fats %v: %v", v.OrderID, v.TechnicianID, v.FatIDs, v.Err)
}

func (v InvariantViolation) Unwrap() error { return v.Err }

// CheckInvariants reports every technician that holds more than one
// in-service/paused FAT on the order. Violations are ordered by first appearance.
func CheckInvariants(order *entities.Order) []InvariantViolation {
	if order == nil {
		return nil
	}
	byTech := make(map[int64][]int64)
	var techOrder []int64
	for _, fat := range order.Fats {
		if fat.Technician == nil || !fat.Status.IsActive() {
			continue
		}
		id := fat.Technician.ID
		if _, seen := byTech[id]; !seen {
			techOrder = append(techOrder, id)
		}
		byTech[id] = append(byTech[id], fat.ID)
	}

	var violations []InvariantViolation
	for _, techID := range techOrder {
		if ids := byTech[techID]; len(ids) > 1 {
			violations = append(violations, InvariantViolation{
				OrderID:      order.ID,
				TechnicianID: techID,
				FatIDs:       ids,
				Err:          ErrMultipleActiveFats,
			})
		}
	}
	return violations
}
