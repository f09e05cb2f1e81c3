// Package dto holds the validated request shapes and response views.
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"teslo/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON (or query) name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsStrongPassword reports whether s contains at least one letter and at
// least one digit or symbol. Length is checked by the min/max tags.
func IsStrongPassword(s string) bool {
	var letter, digitOrSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			digitOrSymbol = true
		}
	}
	return letter && digitOrSymbol
}

// validateStruct runs the struct tags on s and converts failures into a
// Validation error listing every rejected field.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(err.Error())
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: fieldMessage(e),
		})
	}
	return apperrors.Validation("Validation failed", fields...)
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be an email", e.Field())
	case "min", "gte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be longer than or equal to %s characters", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must not be less than %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "password":
		return "The password must have a letter and a number or symbol"
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
