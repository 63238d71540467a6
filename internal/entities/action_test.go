package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionKey_Occurrence(t *testing.T) {
	expected := map[ActionKey]string{
		ActionStartTravel:  "iniciar deslocamento",
		ActionStartService: "iniciar atendimento",
		ActionPause:        "pausar atendimento",
		ActionResume:       "retomar atendimento",
		ActionInterrupt:    "interromper atendimento",
		ActionCancel:       "cancelar atendimento",
		ActionConclude:     "concluir os",
	}
	assert.Len(t, AllActions, len(expected))
	for _, k := range AllActions {
		assert.Equal(t, expected[k], k.Occurrence(), k)
	}
}

func TestActionKey_AcceptsJustification(t *testing.T) {
	assert.False(t, ActionStartTravel.AcceptsJustification())
	assert.False(t, ActionStartService.AcceptsJustification())
	for _, k := range []ActionKey{ActionPause, ActionResume, ActionInterrupt, ActionCancel, ActionConclude} {
		assert.True(t, k.AcceptsJustification(), k)
	}
}

func TestParseActionKey(t *testing.T) {
	k, ok := ParseActionKey("pause")
	assert.True(t, ok)
	assert.Equal(t, ActionPause, k)

	_, ok = ParseActionKey("pausar atendimento")
	assert.False(t, ok)
	assert.False(t, ActionKey("").Valid())
}

func TestParseStatuses(t *testing.T) {
	assert.Equal(t, FatTraveling, ParseFatStatus("3"))
	assert.Equal(t, FatInService, ParseFatStatus("4"))
	assert.Equal(t, FatPaused, ParseFatStatus("5"))
	assert.Equal(t, FatOther, ParseFatStatus("6"))
	assert.Equal(t, FatOther, ParseFatStatus(""))

	s, ok := ParseOrderStatus(6)
	assert.True(t, ok)
	assert.Equal(t, OrderStatusInReview, s)
	assert.True(t, s.IsGate())

	s, ok = ParseOrderStatus(42)
	assert.False(t, ok)
	assert.Equal(t, OrderStatusUnknown, s)
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPaused.IsTerminal())
}
