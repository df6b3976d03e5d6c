package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by the name clients send them under.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})

	return v
}

// Violations collects the failed rules per field.
type Violations struct {
	Errors map[string][]error
}

func (violations Violations) Error() string {
	fields := make([]string, 0, len(violations.Errors))
	for field := range violations.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		for j, err := range violations.Errors[field] {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(err.Error())
		}
	}
	return b.String()
}

func (violations Violations) MarshalJSON() ([]byte, error) {
	errors := make(map[string][]string)
	for fieldName, fieldErrors := range violations.Errors {
		errors[fieldName] = make([]string, len(fieldErrors))
		for index, fieldError := range fieldErrors {
			errors[fieldName][index] = fieldError.Error()
		}
	}

	return json.Marshal(map[string]map[string][]string{
		"errors": errors,
	})
}

// Struct checks the `validate` tags of v. Values that are not structs or
// pointers to structs have nothing to check and pass.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	violations := Violations{Errors: make(map[string][]error)}
	for _, fieldError := range fieldErrors {
		name := fieldError.Field()
		violations.Errors[name] = append(violations.Errors[name], describe(fieldError))
	}
	return violations
}

func describe(fieldError validator.FieldError) error {
	name := fieldError.Field()
	switch fieldError.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "min", "max", "len", "gte", "lte", "gt", "lt":
		return fmt.Errorf("%s must satisfy %s=%s", name, fieldError.Tag(), fieldError.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s]", name, fieldError.Param())
	}
	return fmt.Errorf("%s failed on the %s rule", name, fieldError.Tag())
}
