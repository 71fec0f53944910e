// Package validation applies per-field validation and sanitization policies to
// submitted form values.
//
// A Policy is plain data: which fields are trimmed, which checks run against
// them, and which fields are escaped afterwards. The same policy value is shared
// by the create and update flows of an entity.
//
//	v := validation.New()
//	result := v.Apply(validation.GenreCreatePolicy, form)
//	if !result.Valid() {
//	    // re-render with result.Errors, values come from result.Get
//	}
package validation

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule is a single check against a field. Check is a validator/v10 tag
// ("required", "max=100", "iso8601", "alphanum").
type Rule struct {
	Field   string
	Check   string
	Message string
	// Optional skips the check when the value is empty.
	Optional bool
}

// Policy describes how one form is validated and sanitized.
type Policy struct {
	Trim   []string
	Rules  []Rule
	Escape []string
}

// FieldError is a failed rule, shaped for rendering next to a form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
	Value   string `json:"value"`
}

// Result carries the failures and the sanitized values of a submission.
type Result struct {
	Errors []FieldError
	Values url.Values
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Get returns the first sanitized value of a field.
func (r Result) Get(field string) string {
	return r.Values.Get(field)
}

// All returns every sanitized value of a multi-valued field.
func (r Result) All(field string) []string {
	return r.Values[field]
}

// Validator wraps go-playground/validator with the catalog's custom checks.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the iso8601 tag registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseISO8601(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Apply runs the policy against the submitted form. Values are trimmed first,
// checked, then escaped. Escaping happens whether or not any rule failed.
func (v *Validator) Apply(p Policy, form url.Values) Result {
	values := make(url.Values, len(form))
	for field, vals := range form {
		values[field] = append([]string(nil), vals...)
	}

	for _, field := range p.Trim {
		for i, val := range values[field] {
			values[field][i] = strings.TrimSpace(val)
		}
	}

	var errs []FieldError
	for _, rule := range p.Rules {
		val := values.Get(rule.Field)
		if rule.Optional && val == "" {
			continue
		}
		if err := v.v.Var(val, rule.Check); err != nil {
			errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message, Value: val})
		}
	}

	for _, field := range p.Escape {
		for i, val := range values[field] {
			values[field][i] = Escape(val)
		}
	}

	return Result{Errors: errs, Values: values}
}
