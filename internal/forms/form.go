// Package forms is a small declarative form framework for the HTML-facing
// endpoints: named fields with ordered validators, CSRF checking, and
// per-field error collection across one request/response cycle.
package forms

import (
	"net/url"

	"github.com/tagblog/tagblog/internal/core/csrf"
)

// Validator checks one bound value. Every validator receives the whole form
// so cross-field checks (password confirmation) need no special plumbing;
// validators that only need the value ignore the parameter.
type Validator interface {
	Validate(value string, form *Form) (ok bool, message string)
}

// TokenValidator is the slice of the CSRF service a form needs.
type TokenValidator interface {
	Validate(token string) bool
}

// Field is one named input: its label, validators in declared order, the
// bound raw value and the errors collected by Validate.
type Field struct {
	Name       string
	Label      string
	Secret     bool // never echoed back in re-rendered forms
	Validators []Validator

	Data   string
	Errors []string
}

func (f *Field) validate(form *Form) bool {
	f.Errors = f.Errors[:0]
	valid := true
	// Every validator runs and records its own error; no short-circuit.
	for _, v := range f.Validators {
		if ok, msg := v.Validate(f.Data, form); !ok {
			f.Errors = append(f.Errors, msg)
			valid = false
		}
	}
	return valid
}

// Form is an explicit field registry. Fields keep declaration order for
// rendering; lookup by name serves cross-field validators.
type Form struct {
	fields []*Field
	byName map[string]*Field

	csrfToken string
	csrfError string

	// aliases maps alternate submission keys onto canonical field names
	// (login forms historically posted login_username/login_password).
	aliases map[string]string
}

// Text declares a plain field.
func Text(name, label string, validators ...Validator) *Field {
	return &Field{Name: name, Label: label, Validators: validators}
}

// Password declares a secret field whose value is never re-rendered.
func Password(name, label string, validators ...Validator) *Field {
	return &Field{Name: name, Label: label, Secret: true, Validators: validators}
}

// New builds a form from an explicit field list.
func New(fields ...*Field) *Form {
	f := &Form{
		fields:  fields,
		byName:  make(map[string]*Field, len(fields)),
		aliases: make(map[string]string),
	}
	for _, field := range fields {
		f.byName[field.Name] = field
	}
	return f
}

// Alias registers an alternate submission key for a field. During Bind the
// alias value wins when present.
func (f *Form) Alias(key, fieldName string) *Form {
	f.aliases[key] = fieldName
	return f
}

// Bind populates field data from raw form values. Missing keys leave the
// field empty; the CSRF token is captured for Validate.
func (f *Form) Bind(values url.Values) {
	for _, field := range f.fields {
		field.Data = values.Get(field.Name)
	}
	for key, fieldName := range f.aliases {
		if values.Has(key) {
			if field, ok := f.byName[fieldName]; ok {
				field.Data = values.Get(key)
			}
		}
	}
	f.csrfToken = values.Get(csrf.FieldName)
}

// Validate checks the CSRF token first, then every field's validators in
// declared order. A CSRF failure is recorded at form level and field
// validation still runs so the user sees all problems at once.
func (f *Form) Validate(tokens TokenValidator) bool {
	f.csrfError = ""
	valid := true

	if !tokens.Validate(f.csrfToken) {
		f.csrfError = "invalid or missing CSRF token"
		valid = false
	}

	for _, field := range f.fields {
		if !field.validate(f) {
			valid = false
		}
	}
	return valid
}

// Field returns the named field, nil when undeclared.
func (f *Form) Field(name string) *Field {
	return f.byName[name]
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Value returns the bound data of the named field, empty when undeclared.
func (f *Form) Value(name string) string {
	if field := f.byName[name]; field != nil {
		return field.Data
	}
	return ""
}

// CSRFFailed reports whether the last Validate recorded a CSRF error.
func (f *Form) CSRFFailed() bool {
	return f.csrfError != ""
}

// Errors aggregates per-field messages plus the form-level CSRF entry under
// the "csrf" key.
func (f *Form) Errors() map[string][]string {
	all := make(map[string][]string)
	if f.csrfError != "" {
		all["csrf"] = []string{f.csrfError}
	}
	for _, field := range f.fields {
		if len(field.Errors) > 0 {
			all[field.Name] = field.Errors
		}
	}
	return all
}
