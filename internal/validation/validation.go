// Package validation evaluates console form values against a resource field schema.
package validation

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	MessageRequired = "This field is required"
	MessageNumber   = "Must be a number"
	MessageDate     = "Must be a valid date"
)

type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
	KindEnum   Kind = "enum"
	KindFile   Kind = "file"
	KindList   Kind = "list"
)

// Fields are form values keyed by field name, as entered.
type Fields map[string]string

// Errors maps a field name to its message. Empty means valid.
type Errors map[string]string

// Rule returns a message when value is invalid, "" otherwise.
// It sees the whole form so rules can depend on sibling fields.
type Rule func(value string, form Fields) string

type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Rules    []Rule   `json:"-"`
}

type Schema struct {
	Resource string  `json:"resource"`
	Fields   []Field `json:"fields"`
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func Validate(fields Fields, schema Schema) Errors {
	errs := Errors{}

	for _, field := range schema.Fields {
		value := strings.TrimSpace(fields[field.Name])
		if msg := check(field, value, fields); msg != "" {
			errs[field.Name] = msg
		}
	}

	return errs
}

func check(field Field, value string, form Fields) string {
	if value == "" && field.Required {
		return MessageRequired
	}

	if value != "" {
		switch field.Kind {
		case KindNumber:
			if _, ok := ParseNumber(value); !ok {
				return MessageNumber
			}
		case KindDate:
			if _, ok := ParseDate(value); !ok {
				return MessageDate
			}
		case KindEnum:
			if len(field.Options) > 0 && !contains(field.Options, value) {
				return "Must be one of: " + strings.Join(field.Options, ", ")
			}
		}
	}

	for _, rule := range field.Rules {
		if msg := rule(value, form); msg != "" {
			return msg
		}
	}

	return ""
}

// ParseNumber accepts finite decimal numbers only.
func ParseNumber(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339}

func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
