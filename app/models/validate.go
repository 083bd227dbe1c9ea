package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"inkwell/app/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns validator output into a ValidationError naming
// the first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Wrap(apperr.Validation, "invalid input", err)
	}
	fe := verrs[0]
	msg := fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag())
	return apperr.Wrap(apperr.Validation, msg, err)
}
