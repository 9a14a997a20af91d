// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches exchange ticker symbols such as "NFLX" or "BRK.B".
var tickerRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,9}$`)

// usernameRegex allows letters, digits, dots, underscores, and hyphens.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]{3,64}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("username", validateUsername)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}
