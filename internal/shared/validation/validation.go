// Package validation runs struct-tag schemas over create/edit payloads and
// reports every violation at once, keyed by json field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"go-pos/internal/shared/result"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	permCodePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*:[a-z][a-z0-9_-]*$`)
)

// Validator wraps a configured validator.Validate. It is safe for concurrent
// use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names (e.g. "phoneNumber") instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("permcode", func(fl validator.FieldLevel) bool {
		return permCodePattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates payload and returns nil when it passes.
func (val *Validator) Struct(payload any) result.FieldErrors {
	err := val.v.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return result.FieldErrors{"_": {"The provided input is invalid"}}
	}

	out := make(result.FieldErrors, len(verrs))
	for _, fe := range verrs {
		out.Add(fieldKey(fe), val.message(fe))
	}
	return out
}

// fieldKey drops the root struct name from the namespace so nested fields
// keep their path, e.g. "items[0].quantity".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func (val *Validator) message(fe validator.FieldError) string {
	field := val.humanize(fe.Field())

	switch fe.Tag() {
	case "required", "required_if", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number"
	case "permcode":
		return fmt.Sprintf("%s must have the form resource:action", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit(fe.Kind()))
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit(fe.Kind()))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, val.humanize(fe.Param()))
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func unit(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}

// humanize turns "phoneNumber", "NewPassword" or "branch_id" into
// "Phone Number", "New Password", "Branch Id".
func (val *Validator) humanize(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	// a Caser is stateful, so one per call
	return cases.Title(language.English).String(b.String())
}
