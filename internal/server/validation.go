package server

import (
	"sync"
	"unicode/utf8"

	"esports-registration/internal/registration"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxNameLength = 64

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("gamekind", func(fl validator.FieldLevel) bool {
			_, err := registration.ParseGameKind(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("name", func(fl validator.FieldLevel) bool {
			return validateName(fl.Field().String())
		})
		_ = engine.RegisterValidation("utf8name", func(fl validator.FieldLevel) bool {
			return utf8.ValidString(fl.Field().String())
		})
	})
}

// validateName only bounds length; emptiness is decided by the form
// controller so its messages and ordering stay in one place.
func validateName(name string) bool {
	return utf8.RuneCountInString(name) <= maxNameLength
}
