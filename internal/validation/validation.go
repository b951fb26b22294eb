// Package validation checks submitted forms before anything is sent to the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const SubscriberEmailTag = "subscriber_email"

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\\.[a-zA-Z]{2,}$")

// ValidateEmail applies the subscription form rules in order and returns the
// first failing rule's message, or "" when the address is acceptable.
func ValidateEmail(value string) string {
	length := utf8.RuneCountInString(value)

	switch {
	case strings.TrimSpace(value) == "":
		return "Email is required"
	case length < 6:
		return "Email must be at least 6 characters"
	case length > 254:
		return "Email must be less than 254 characters"
	case strings.Contains(value, " "):
		return "Email cannot contain spaces"
	case !strings.Contains(value, "@"):
		return "Email must contain @"
	case strings.HasPrefix(value, "@"), strings.HasPrefix(value, "."),
		strings.HasSuffix(value, "@"), strings.HasSuffix(value, "."):
		return "Email cannot start or end with @ or ."
	case !emailPattern.MatchString(value):
		return "Please enter a valid email address"
	}
	return ""
}

// New returns a validator that reports fields by their form name and knows the subscriber_email tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation(SubscriberEmailTag, func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String()) == ""
	}); err != nil {
		panic(fmt.Sprintf("validation: registering %q: %v", SubscriberEmailTag, err))
	}

	return v
}

// FieldErrors maps form field names to a human readable message. A nil map
// means err was not a validation failure.
func FieldErrors(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// First returns one message from FieldErrors, preferring the order of fields.
func First(errs map[string]string, fields ...string) string {
	for _, field := range fields {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	for _, msg := range errs {
		return msg
	}
	return ""
}

func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case SubscriberEmailTag:
		value, _ := fe.Value().(string)
		return ValidateEmail(value)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, fe.Param())
	case "eqfield":
		return label + " does not match"
	case "url":
		return label + " must be a valid URL"
	default:
		return label + " is invalid"
	}
}

func fieldLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	if len(words) == 0 {
		return name
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}
