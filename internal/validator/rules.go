package validator

import (
	"log"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers all custom validation functions on the
// given validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'otp': 6-digit numeric verification code
	mustRegister("otp", validateOTP)

	// 'is-user-role': role from statuses.go
	mustRegister("is-user-role", validateUserRole)

	// 'is-item-condition': listing condition attribute
	mustRegister("is-item-condition", validateItemCondition)

	// 'is-transaction-action': seller response action
	mustRegister("is-transaction-action", validateTransactionAction)
}

func validateOTP(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 6 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are for 'required' to catch
	}

	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAdmin, models.UserRoleOwner:
		return true
	default:
		return false
	}
}

func validateItemCondition(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "new", "like_new", "good", "fair", "worn":
		return true
	default:
		return false
	}
}

func validateTransactionAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.TransactionAction(value) {
	case models.ActionDeal, models.ActionMakeOffer, models.ActionNoDeal:
		return true
	default:
		return false
	}
}
