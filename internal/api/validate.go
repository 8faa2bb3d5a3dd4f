package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that names fields by their JSON key.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage turns the first validation failure into a client message.
// Required fields are reported in declaration order.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "Missing required field: " + fe.Field()
	case "oneof":
		return fmt.Sprintf("Invalid %s: %v (expected one of: %s)", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "Invalid field: " + fe.Field()
	}
}
