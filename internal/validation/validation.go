package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"auctions/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form name so messages line up with submitted input.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Struct validates s against its `validate` tags. It returns nil or a *errors.ValidationError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return errors.NewValidationError(fields)
}

// Merge folds extra field messages into err, which may be nil.
func Merge(err error, extra map[string]string) error {
	if len(extra) == 0 {
		return err
	}
	var verr *errors.ValidationError
	if err == nil || !stderrors.As(err, &verr) {
		if err != nil {
			return err
		}
		verr = errors.NewValidationError(map[string]string{})
	}
	for k, v := range extra {
		if _, ok := verr.Fields[k]; !ok {
			verr.Fields[k] = v
		}
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "url", "http_url":
		return "Enter a valid URL."
	case "eqfield":
		return "Passwords must match."
	case "alphanumunicode", "printascii":
		return "Enter a valid value."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

// Validator adapts Struct to echo.Validator.
type Validator struct{}

// Validate implements echo.Validator interface.
func (Validator) Validate(i any) error {
	return Struct(i)
}
