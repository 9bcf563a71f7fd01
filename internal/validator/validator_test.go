package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupPayload struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Validate(&signupPayload{
		Name:     "Asel",
		Email:    "asel@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Validate(&signupPayload{
		Name:     "A",
		Email:    "not-an-email",
		Password: "",
	})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "name")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
}

func TestValidate_OTPRule(t *testing.T) {
	t.Parallel()

	type payload struct {
		Code string `json:"code" validate:"required,otp"`
	}

	v := New()
	assert.NoError(t, v.Validate(&payload{Code: "123456"}))
	assert.Error(t, v.Validate(&payload{Code: "12345"}))
	assert.Error(t, v.Validate(&payload{Code: "12345a"}))
	assert.Error(t, v.Validate(&payload{Code: "1234567"}))
}

func TestValidate_UserRoleRule(t *testing.T) {
	t.Parallel()

	type payload struct {
		Role string `json:"role" validate:"required,is-user-role"`
	}

	v := New()
	assert.NoError(t, v.Validate(&payload{Role: "user"}))
	assert.NoError(t, v.Validate(&payload{Role: "admin"}))
	assert.NoError(t, v.Validate(&payload{Role: "owner"}))
	assert.Error(t, v.Validate(&payload{Role: "moderator"}))
}

func TestValidate_ItemConditionRule(t *testing.T) {
	t.Parallel()

	type payload struct {
		Condition string `json:"condition" validate:"required,is-item-condition"`
	}

	v := New()
	assert.NoError(t, v.Validate(&payload{Condition: "new"}))
	assert.NoError(t, v.Validate(&payload{Condition: "like_new"}))
	assert.NoError(t, v.Validate(&payload{Condition: "good"}))
	assert.NoError(t, v.Validate(&payload{Condition: "fair"}))
	assert.Error(t, v.Validate(&payload{Condition: "ragged"}))
}

func TestValidate_TransactionActionRule(t *testing.T) {
	t.Parallel()

	type payload struct {
		Action string `json:"action" validate:"required,is-transaction-action"`
	}

	v := New()
	assert.NoError(t, v.Validate(&payload{Action: "deal"}))
	assert.NoError(t, v.Validate(&payload{Action: "make_offer"}))
	assert.NoError(t, v.Validate(&payload{Action: "no_deal"}))
	assert.Error(t, v.Validate(&payload{Action: "maybe"}))
}
