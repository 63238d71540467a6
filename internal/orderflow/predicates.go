// Package orderflow decides which occurrences a technician may request on a
// service order. Everything here is pure: callers pass an order snapshot and
// the technician id, nothing is read from ambient state and nothing is mutated.
package orderflow

import "field-service/internal/entities"

// HasNoPendingIssue is true when no pending-issue reason blocks the order.
func HasNoPendingIssue(order *entities.Order) bool {
	if order == nil {
		return false
	}
	return order.PendingIssueID == nil || *order.PendingIssueID <= 0
}

// HasFinancialRelease is true once the order was financially released.
// A snapshot without the release block counts as not released.
func HasFinancialRelease(order *entities.Order) bool {
	return order != nil && order.FinancialRelease != nil && order.FinancialRelease.Released
}

// ActiveFatOf returns the technician's in-service or paused FAT. With more
// than one match the first one wins; see CheckInvariants.
func ActiveFatOf(order *entities.Order, technicianID int64) *entities.FAT {
	return firstFat(order, technicianID, func(s entities.FatStatus) bool { return s.IsActive() })
}

// TravelingFatOf returns the technician's FAT that is still in travel.
func TravelingFatOf(order *entities.Order, technicianID int64) *entities.FAT {
	return firstFat(order, technicianID, func(s entities.FatStatus) bool { return s == entities.FatTraveling })
}

// FatHasMandatoryData requires at least one of the text fields and a positive cycle count.
func FatHasMandatoryData(fat *entities.FAT) bool {
	if fat == nil {
		return false
	}
	hasText := fat.DescricaoProblema != "" || fat.SolucaoEncontrada != "" || fat.Observacoes != ""
	return hasText && fat.NumeroCiclos > 0
}

// OrderNotReviewedOrConcluded is false once the order reached review or conclusion.
func OrderNotReviewedOrConcluded(order *entities.Order) bool {
	if order == nil {
		return false
	}
	return order.Status != entities.OrderStatusInReview && order.Status != entities.OrderStatusConcluded
}

func firstFat(order *entities.Order, technicianID int64, match func(entities.FatStatus) bool) *entities.FAT {
	if order == nil {
		return nil
	}
	for i := range order.Fats {
		fat := &order.Fats[i]
		if fat.BelongsTo(technicianID) && match(fat.Status) {
			return fat
		}
	}
	return nil
}
