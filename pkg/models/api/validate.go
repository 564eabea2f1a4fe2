package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/samber/lo"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks a request DTO against its struct tags. Failures are validation errors
// naming the offending JSON fields.
func Validate(req interface{}) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return ierr.WithError(err).Mark(ierr.ErrValidation)
	}
	problems := lo.Map(fields, func(fe validator.FieldError, _ int) string {
		if fe.Param() != "" {
			return fmt.Sprintf("%s fails %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag())
	})
	return ierr.NewErrorf("invalid request: %s", strings.Join(problems, "; ")).
		WithHint("check the request fields").
		Mark(ierr.ErrValidation)
}
