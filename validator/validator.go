package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	Validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// New returns a validator that reports fields by their env variable name when
// present, then by their json name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(fieldName)

	return &Validator{Validator: v}
}

func fieldName(fld reflect.StructField) string {
	const maxSplits = 2

	for _, tag := range []string{"env", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", maxSplits)[0]

		switch name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}

	return ""
}

func (v *Validator) Validate(i any) error {
	if err := v.Validator.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return formatValidationErrors(validationErrs)
		}

		return err
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrs := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if field == "" {
			field = err.StructField()
		}

		validationErrs = append(validationErrs, ValidationError{
			Field:   field,
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: errorMessage(field, err),
		})
	}

	return validationErrs
}

var simpleMessages = map[string]string{ //nolint:gochecknoglobals
	"required": "is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"hostname": "must be a valid hostname",
}

var parameterizedMessages = map[string]string{ //nolint:gochecknoglobals
	"min":   "must be at least %s",
	"max":   "must be at most %s",
	"gt":    "must be greater than %s",
	"gte":   "must be greater than or equal to %s",
	"lt":    "must be less than %s",
	"lte":   "must be less than or equal to %s",
	"oneof": "must be one of [%s]",
}

func errorMessage(field string, err validator.FieldError) string {
	if msg, ok := simpleMessages[err.Tag()]; ok {
		return field + " " + msg
	}

	if format, ok := parameterizedMessages[err.Tag()]; ok {
		return field + " " + fmt.Sprintf(format, err.Param())
	}

	return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}
