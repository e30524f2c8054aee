package auth

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requiredMessage is the message for any missing required field, whether the
// check runs through validator tags or by hand.
const requiredMessage = "this field is required"

// Validate is the shared validator instance used by all request DTOs.
// Field names in produced errors come from the json struct tags, so the
// client sees "password_confirm", not "PasswordConfirm".
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors converts a validator error into a field -> message map.
// Unknown tags fall back to a generic message; nil is returned for nil input
// or non-validator errors.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredMessage
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "eqfield":
		return "passwords do not match"
	default:
		return "this field is invalid"
	}
}
