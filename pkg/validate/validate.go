// Package validate runs go-playground/validator rules and flattens the
// result into a field → message map keyed by JSON field names.
//
//	type ContactForm struct {
//	    Email    string `json:"email"    validate:"required,email"`
//	    WhatsApp string `json:"whatsapp" validate:"omitempty,phone"`
//	}
//
//	if errs := validate.Struct(form); validate.HasErrors(errs) {
//	    response.ValidationError(w, errs)
//	}
//
// Besides the built-in tags, "phone" accepts digits, spaces, dashes, dots,
// parentheses and a leading plus, with at least 7 digits.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	v        = validator.New(validator.WithRequiredStructEnabled())
	phoneRe  = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
	digitsRe = regexp.MustCompile(`[0-9]`)
)

func init() {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return phoneRe.MatchString(s) && len(digitsRe.FindAllString(s, -1)) >= 7
	})
}

// Struct validates s. An empty map means no errors.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := v.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = message(fe)
	}
	return errs
}

// HasErrors reports whether errs contains at least one error.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", f)
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", f)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	}
	return fmt.Sprintf("%s failed the %s rule", f, fe.Tag())
}
