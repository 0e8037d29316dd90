package service

import (
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/limbo/cadence/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		validate.RegisterValidation("iana_timezone", func(fl validator.FieldLevel) bool {
			_, err := time.LoadLocation(fl.Field().String())
			return err == nil
		})
	})
}

// RecurrenceSpecValid rejects only structurally impossible specs. A spec the
// evaluator would fail open on is still accepted: observed behavior of the
// schedule grammar is "malformed means always due", and the API keeps it.
func RecurrenceSpecValid(spec entity.RecurrenceSpec) bool {
	for _, d := range spec.Days {
		if d < 1 || d > 7 {
			return false
		}
	}
	if spec.From != nil && spec.To != nil && spec.From.After(*spec.To) {
		return false
	}
	return true
}
