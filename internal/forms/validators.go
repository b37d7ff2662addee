package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required fails on empty or whitespace-only values.
type Required struct {
	Message string
}

func (v Required) Validate(value string, _ *Form) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return false, v.message()
	}
	return true, ""
}

func (v Required) message() string {
	if v.Message != "" {
		return v.Message
	}
	return "this field is required"
}

// Length bounds the value's rune count. A bound of 0 means unbounded on that
// side.
type Length struct {
	Min     int
	Max     int
	Message string
}

func (v Length) Validate(value string, _ *Form) (bool, string) {
	n := utf8.RuneCountInString(value)
	if v.Min > 0 && n < v.Min {
		return false, v.message()
	}
	if v.Max > 0 && n > v.Max {
		return false, v.message()
	}
	return true, ""
}

func (v Length) message() string {
	if v.Message != "" {
		return v.Message
	}
	switch {
	case v.Min > 0 && v.Max > 0:
		return fmt.Sprintf("must be between %d and %d characters", v.Min, v.Max)
	case v.Min > 0:
		return fmt.Sprintf("must be at least %d characters", v.Min)
	default:
		return fmt.Sprintf("must be at most %d characters", v.Max)
	}
}

// EqualTo requires the value to match another field's bound data. An
// undeclared sibling is treated as a mismatch, never a crash.
type EqualTo struct {
	FieldName string
	Message   string
}

func (v EqualTo) Validate(value string, form *Form) (bool, string) {
	other := form.Field(v.FieldName)
	if other == nil || other.Data != value {
		return false, v.message()
	}
	return true, ""
}

func (v EqualTo) message() string {
	if v.Message != "" {
		return v.Message
	}
	return fmt.Sprintf("must match the %s field", v.FieldName)
}

// Excludes fails when the value contains the given substring.
type Excludes struct {
	Substring string
	Message   string
}

func (v Excludes) Validate(value string, _ *Form) (bool, string) {
	if strings.Contains(value, v.Substring) {
		return false, v.message()
	}
	return true, ""
}

func (v Excludes) message() string {
	if v.Message != "" {
		return v.Message
	}
	return fmt.Sprintf("must not contain %q", v.Substring)
}
