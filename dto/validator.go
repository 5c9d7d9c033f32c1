package dto

import (
	"encoding/json"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("review_rating", validateReviewRating)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateReviewRating(fl validator.FieldLevel) bool {
	return IsValidRating(fl.Field().Int())
}

// IsValidRating reports whether value is an integer strictly within [1,5].
// Floats with a fractional part and anything non-numeric are rejected.
func IsValidRating(value interface{}) bool {
	switch v := value.(type) {
	case int:
		return v >= 1 && v <= 5
	case int64:
		return v >= 1 && v <= 5
	case float64:
		return v == math.Trunc(v) && v >= 1 && v <= 5
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return false
		}
		return n >= 1 && n <= 5
	default:
		return false
	}
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "review_rating":
				message = fieldError.Field() + " must be an integer between 1 and 5"
			case "url":
				message = fieldError.Field() + " must be a valid URL"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Validator interface {
	Validate() error
}
