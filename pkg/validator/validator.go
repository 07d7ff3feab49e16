package validator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"quicksell-pos/internal/apperr"
)

// ErrorResponse is one failed field: its namespace, the tag that failed and a
// readable message.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
	Message     string
}

var validate = validator.New()

func init() {
	// Decimals are compared as float64 so the usual gte/lte tags apply to prices.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := validate.RegisterValidation("enum", validateEnum); err != nil {
		panic(fmt.Sprintf("register enum validator: %v", err))
	}
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []*ErrorResponse{{FailedField: reflect.TypeOf(data).String(), Tag: "invalid", Message: err.Error()}}
	}
	errs := make([]*ErrorResponse, 0, len(validationErrs))
	for _, fe := range validationErrs {
		errs = append(errs, &ErrorResponse{
			FailedField: fe.Namespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
			Message:     ValidationErrorMessage(fe),
		})
	}
	return errs
}

// Validate runs the struct tags and converts failures into a validation
// error tagged with code, one detail per failed field.
func Validate(data interface{}, code, msg string) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}

	details := make([]apperr.FieldError, len(errs))
	for i, fe := range errs {
		details[i] = apperr.FieldError{Field: fe.FailedField, Message: fe.Message}
	}
	return apperr.Validation(code, msg).WithDetails(details...)
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "enum":
		return fmt.Sprintf("invalid enum value: %v", fe.Value())
	default:
		return "is invalid"
	}
}

func validateEnum(fl validator.FieldLevel) bool {
	type Enum interface {
		Validate() error
	}

	value, ok := fl.Field().Interface().(Enum)
	if !ok {
		return false
	}

	return value.Validate() == nil
}
