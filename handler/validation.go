package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/emzola/blogapi/data"
	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
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

// validateRequest checks a decoded request body against its validate tags
// and returns the first message per field, or nil when the body is valid.
func validateRequest(body any) map[string]string {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return map[string]string{"non_field_errors": err.Error()}
	}
	messages := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		// Slice elements report as tags[0]; key them by the slice field.
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, exists := messages[field]; exists {
			continue
		}
		messages[field] = fieldMessage(field, fe)
	}
	return messages
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		if field == "status" {
			return data.StatusChoiceMessage
		}
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return "Invalid value."
	}
}
