package farm

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewListing returns a Listing carrying the defaults applied to absent fields.
func NewListing() *Listing { return &Listing{InStock: true} }

// NewTutorial returns an empty Tutorial ready for decoding.
func NewTutorial() *Tutorial { return &Tutorial{} }

// NewMessage returns a Message posted to the default room unless the input says otherwise.
func NewMessage() *Message { return &Message{Room: DefaultRoom} }

// Validate checks a Listing, Tutorial or Message against its field rules.
// All violations are reported together in a *ValidationError.
func Validate(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", record, err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "http_url":
		return "must be a valid http or https URL"
	}
	return "failed on " + fe.Tag()
}

// DecodeError converts a JSON binding failure into a ValidationError.
// Type mismatches name the offending field; anything else is reported
// against the body as a whole.
func DecodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Invalid(typeErr.Field, "type", typeErr.Type.String(),
			fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
	}
	return Invalid("body", "json", "", "request body must be a JSON object: "+err.Error())
}
