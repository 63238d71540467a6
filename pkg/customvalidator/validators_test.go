package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionInput struct {
	Action string `validate:"required,action_key"`
	Note   string `validate:"omitempty,notblank"`
}

func TestActionKeyValidation(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	assert.NoError(t, v.Struct(actionInput{Action: "start_travel"}))
	assert.NoError(t, v.Struct(actionInput{Action: "conclude", Note: "ok"}))

	err := v.Struct(actionInput{Action: "teleport"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "action_key", verrs[0].Tag())

	assert.Error(t, v.Struct(actionInput{}))
}
