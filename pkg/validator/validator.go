package validator

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var intlPhone = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
		return intlPhone.MatchString(fl.Field().String())
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var checks a single value against a tag such as "required" or "max=50".
func (cv *CustomValidator) Var(value interface{}, tag string) error {
	return cv.validator.Var(value, tag)
}

// VarWithValue checks value against other using a cross-field tag such as "eqfield".
func (cv *CustomValidator) VarWithValue(value, other interface{}, tag string) error {
	return cv.validator.VarWithValue(value, other, tag)
}

// FailedTag returns the tag that rejected a Var/VarWithValue call, or "".
func FailedTag(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Tag()
	}
	return ""
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "len":
				errors[field] = field + " must be exactly " + e.Param() + " characters"
			case "oneof":
				errors[field] = field + " must be one of " + e.Param()
			case "numeric", "number":
				errors[field] = field + " must be a number"
			case "intl_phone":
				errors[field] = field + " must be an international phone number"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
