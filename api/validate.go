/*
validate.go - Request validation and the "Validation failed" envelope

PURPOSE:
  Wires go-playground/validator to the API's error contract. Every invalid
  request produces a 400 with:

    {"error": "Validation failed", "details": [{"field", "message"}, ...]}

  Field names in details are the JSON names (including slice indexes for
  nested items, e.g. "items[0].taxRate"), not Go struct field names.

SEE ALSO:
  - dto.go: The validate struct tags driving this
  - handlers.go: Calls validateStruct before touching the ledger
*/
package api

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct returns per-field errors for an invalid request, nil for a
// valid one.
func validateStruct(v *validator.Validate, req any) []FieldError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return details
}

// fieldPath strips the root struct name from the namespace:
// "TransactionRequest.items[0].cost" -> "items[0].cost".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// parseDate parses an ISO 8601 / RFC 3339 timestamp at full precision.
// Returns a field error rather than an error type so handlers can merge it
// into the validation envelope.
func parseDate(field, value string) (time.Time, *FieldError) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Message: "must be a valid ISO 8601 datetime"}
	}
	return t.UTC(), nil
}
