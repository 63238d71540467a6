package orderflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"field-service/internal/entities"
)

func TestHasNoPendingIssue(t *testing.T) {
	assert.False(t, HasNoPendingIssue(nil))
	assert.True(t, HasNoPendingIssue(&entities.Order{}))
	assert.True(t, HasNoPendingIssue(&entities.Order{PendingIssueID: int64Ptr(0)}))
	assert.True(t, HasNoPendingIssue(&entities.Order{PendingIssueID: int64Ptr(-1)}))
	assert.False(t, HasNoPendingIssue(&entities.Order{PendingIssueID: int64Ptr(7)}))
}

func TestHasFinancialRelease(t *testing.T) {
	assert.False(t, HasFinancialRelease(nil))
	assert.False(t, HasFinancialRelease(&entities.Order{}))
	assert.False(t, HasFinancialRelease(&entities.Order{FinancialRelease: &entities.FinancialRelease{}}))
	assert.True(t, HasFinancialRelease(&entities.Order{FinancialRelease: &entities.FinancialRelease{Released: true}}))
}

func TestActiveAndTravelingFatOf(t *testing.T) {
	traveling := fatOf(techID, entities.FatTraveling)
	traveling.ID = 1
	paused := fatOf(techID, entities.FatPaused)
	paused.ID = 2
	foreign := fatOf(99, entities.FatInService)
	foreign.ID = 3
	closed := fatOf(techID, entities.FatOther)
	closed.ID = 4
	order := releasedOrder(closed, foreign, traveling, paused)

	active := ActiveFatOf(order, techID)
	if assert.NotNil(t, active) {
		assert.Equal(t, int64(2), active.ID)
	}
	trav := TravelingFatOf(order, techID)
	if assert.NotNil(t, trav) {
		assert.Equal(t, int64(1), trav.ID)
	}

	assert.Nil(t, ActiveFatOf(order, 55))
	assert.Nil(t, TravelingFatOf(order, 99))
	assert.Nil(t, ActiveFatOf(nil, techID))
}

func TestFatHasMandatoryData(t *testing.T) {
	cases := []struct {
		name string
		fat  *entities.FAT
		want bool
	}{
		{"nil", nil, false},
		{"empty", &entities.FAT{}, false},
		{"description and cycles", &entities.FAT{DescricaoProblema: "x", NumeroCiclos: 1}, true},
		{"solution and cycles", &entities.FAT{SolucaoEncontrada: "x", NumeroCiclos: 2}, true},
		{"observations and cycles", &entities.FAT{Observacoes: "x", NumeroCiclos: 9}, true},
		{"text without cycles", &entities.FAT{DescricaoProblema: "x", NumeroCiclos: 0}, false},
		{"cycles without text", &entities.FAT{NumeroCiclos: 4}, false},
		{"negative cycles", &entities.FAT{Observacoes: "x", NumeroCiclos: -1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FatHasMandatoryData(tc.fat))
		})
	}
}

func TestOrderNotReviewedOrConcluded(t *testing.T) {
	assert.False(t, OrderNotReviewedOrConcluded(nil))
	assert.False(t, OrderNotReviewedOrConcluded(&entities.Order{Status: entities.OrderStatusInReview}))
	assert.False(t, OrderNotReviewedOrConcluded(&entities.Order{Status: entities.OrderStatusConcluded}))
	assert.True(t, OrderNotReviewedOrConcluded(&entities.Order{Status: entities.OrderStatusInService}))
	assert.True(t, OrderNotReviewedOrConcluded(&entities.Order{Status: entities.OrderStatusCancelled}))
}

func TestCheckInvariants(t *testing.T) {
	a := fatOf(techID, entities.FatInService)
	a.ID = 1
	b := fatOf(techID, entities.FatPaused)
	b.ID = 2
	c := fatOf(99, entities.FatPaused)
	c.ID = 3
	d := fatOf(techID, entities.FatTraveling)
	d.ID = 4

	assert.Empty(t, CheckInvariants(releasedOrder(a, c, d)))
	assert.Empty(t, CheckInvariants(nil))

	violations := CheckInvariants(releasedOrder(a, c, b))
	if assert.Len(t, violations, 1) {
		v := violations[0]
		assert.Equal(t, techID, v.TechnicianID)
		assert.Equal(t, []int64{1, 2}, v.FatIDs)
		assert.ErrorIs(t, v, ErrMultipleActiveFats)
	}
}
