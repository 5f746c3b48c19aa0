// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

type ValidationError struct {
	Field   string `json:"campo"`
	Tag     string `json:"regla"`
	Message string `json:"mensaje"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return "El campo " + field + " es obligatorio"
	case "email":
		return "El formato del email no es válido"
	case "min":
		return "El campo " + field + " debe tener al menos " + e.Param() + " caracteres"
	case "max":
		return "El campo " + field + " no puede superar " + e.Param() + " caracteres"
	case "oneof":
		return "El campo " + field + " debe ser uno de: " + e.Param()
	default:
		return "El campo " + field + " no es válido"
	}
}
