// Package validation checks decoded request bodies and reports failures as problem field errors
// keyed by JSON name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/pkg/problem"
	"github.com/blaisecz/bedtime-advisor/pkg/timefmt"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// customRules are the request-specific tags and the message each reports.
var customRules = map[string]struct {
	fn      validator.Func
	message string
}{
	"clock": {
		fn: func(fl validator.FieldLevel) bool {
			_, err := domain.ParseClockTime(fl.Field().String())
			return err == nil
		},
		message: "must be a 24-hour time of day (HH:MM)",
	},
	"quarter_step": {
		fn: func(fl validator.FieldLevel) bool {
			return domain.IsQuarterStep(fl.Field().Float())
		},
		message: "must be a multiple of 0.25",
	},
	"locale": {
		fn: func(fl validator.FieldLevel) bool {
			_, err := timefmt.ParseLocale(fl.Field().String())
			return err == nil
		},
		message: "must be a valid BCP 47 locale",
	},
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	for tag, rule := range customRules {
		if err := v.RegisterValidation(tag, rule.fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

// jsonName reports fields under the name clients send.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Validate returns one field error per failed rule, or nil.
func Validate(s any) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.FieldError{{Field: "body", Message: "is invalid"}}
	}

	fieldErrors := make([]problem.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return fieldErrors
}

func message(fe validator.FieldError) string {
	if rule, ok := customRules[fe.Tag()]; ok {
		return rule.message
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
