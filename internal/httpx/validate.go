package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sunnysingha911/AI-powered-job/internal/apperror"
)

// newValidator builds the request validator. Field names in violations use
// the json tag so clients see the names they sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Registration password policy: length >= 8 with at least one uppercase,
	// one lowercase and one digit.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 8 {
			return false
		}
		var upper, lower, digit bool
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})
	return v
}

// decodeValid decodes the JSON body into T and applies struct validation.
// Violations come back as a single validation failure carrying per-field
// detail in discovery order, distinguishable from every other error kind.
func decodeValid[T any](v *validator.Validate, req *http.Request) (T, error) {
	var payload T
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		return payload, apperror.BadRequest("Invalid JSON body")
	}
	if err := v.Struct(payload); err != nil {
		var violations validator.ValidationErrors
		if !errors.As(err, &violations) {
			return payload, err
		}
		fields := make([]apperror.FieldError, 0, len(violations))
		for _, violation := range violations {
			fields = append(fields, apperror.FieldError{
				Field:   violation.Field(),
				Message: violationMessage(violation),
			})
		}
		return payload, apperror.Validation(fields)
	}
	return payload, nil
}

func violationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "password":
		return "must be at least 8 characters with an uppercase letter, a lowercase letter and a number"
	default:
		return "is invalid"
	}
}
