package utils

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("password", ValidatePasswordRule)
	v.RegisterValidation("priority", ValidatePriorityRule)
}

// InitValidator registers the custom rules on both the standalone validator
// and the one gin uses for binding.
func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

func ValidatePassword(password string) bool {
	// Password must:
	// - Be at least 6 characters long
	// - Contain at least one number
	// - Contain at least one special character

	hasNumber := false
	hasSpecial := false

	if len(password) < 6 {
		return false
	}

	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasNumber && hasSpecial
}

// ValidatePriorityRule accepts low, medium and high. Empty is left to "required".
func ValidatePriorityRule(fl validator.FieldLevel) bool {
	return ValidPriority(fl.Field().String())
}

func ValidPriority(p string) bool {
	switch strings.TrimSpace(p) {
	case "low", "medium", "high":
		return true
	}
	return false
}
