// Package validate holds the shared validator instance and the custom
// rules used by login and cadastro forms before anything hits the wire.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var instance *validator.Validate

func init() {
	instance = validator.New()
	instance.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
	instance.RegisterValidation("trimmedemail", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		email := strings.TrimSpace(field.String())
		if email == "" {
			return false
		}
		if len(email) > 254 {
			return false
		}
		return instance.Var(email, "email") == nil
	})
	instance.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return IsCPF(field.String())
	})
	instance.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return isStrongPassword(field.String())
	})
}

// Struct runs the shared validator over v.
func Struct(v any) error {
	return instance.Struct(v)
}

// IsCPF checks the digit shape of a CPF: exactly 11 digits after
// stripping punctuation, and not all the same digit.
func IsCPF(cpf string) bool {
	var digits []rune
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) != 11 {
		return false
	}
	for _, d := range digits[1:] {
		if d != digits[0] {
			return true
		}
	}
	return false
}

// isStrongPassword mirrors the signup rule: at least 8 chars with
// lower, upper, digit and symbol.
func isStrongPassword(senha string) bool {
	if len(senha) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range senha {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Message maps validator failures onto per-field user messages,
// falling back to a single generic string.
func Message(err error, messages map[string]map[string]string, fallback string) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return errors.New(fallback)
	}
	for _, valErr := range valErrs {
		if fieldMessages, ok := messages[valErr.Field()]; ok {
			if msg, ok := fieldMessages[valErr.Tag()]; ok {
				return errors.New(msg)
			}
			if msg, ok := fieldMessages["*"]; ok {
				return errors.New(msg)
			}
		}
	}
	return errors.New(fallback)
}
