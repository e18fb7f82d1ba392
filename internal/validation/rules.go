package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

// Positive rejects numbers that are not strictly greater than zero. Empty values pass.
func Positive(value string, _ Fields) string {
	if value == "" {
		return ""
	}
	n, ok := ParseNumber(value)
	if !ok {
		return MessageNumber
	}
	if n <= 0 {
		return "Must be greater than 0"
	}
	return ""
}

// NonNegative rejects numbers below zero. Empty values pass.
func NonNegative(value string, _ Fields) string {
	if value == "" {
		return ""
	}
	n, ok := ParseNumber(value)
	if !ok {
		return MessageNumber
	}
	if n < 0 {
		return "Must not be negative"
	}
	return ""
}

// ExactDigits requires exactly n ASCII digits, empty included.
func ExactDigits(n int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("Must be exactly %d digits", n)
	}
	return func(value string, _ Fields) string {
		if len(value) != n {
			return message
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return message
			}
		}
		return ""
	}
}

// When applies rule only while field holds one of values.
func When(field string, values []string, rule Rule) Rule {
	return func(value string, form Fields) string {
		if !contains(values, strings.TrimSpace(form[field])) {
			return ""
		}
		return rule(value, form)
	}
}

// Unless applies rule except while field holds one of values.
func Unless(field string, values []string, rule Rule) Rule {
	return func(value string, form Fields) string {
		if contains(values, strings.TrimSpace(form[field])) {
			return ""
		}
		return rule(value, form)
	}
}

// RequiredWhen makes a field required while another field holds one of values.
func RequiredWhen(field string, values ...string) Rule {
	return When(field, values, NotEmpty(MessageRequired))
}

func NotEmpty(message string) Rule {
	return func(value string, _ Fields) string {
		if value == "" {
			return message
		}
		return ""
	}
}

// MinLength counts runes. Empty values pass.
func MinLength(n int) Rule {
	return func(value string, _ Fields) string {
		if value == "" || len([]rune(value)) >= n {
			return ""
		}
		return fmt.Sprintf("Must be at least %d characters long", n)
	}
}

func Email(value string, _ Fields) string {
	if value == "" {
		return ""
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "Must be a valid email address"
	}
	return ""
}

// Phone allows digits with an optional leading plus and common separators.
func Phone(value string, _ Fields) string {
	if value == "" {
		return ""
	}
	for i, r := range value {
		switch {
		case unicode.IsDigit(r), r == ' ', r == '-', r == '(', r == ')':
		case r == '+' && i == 0:
		default:
			return "Must be a valid phone number"
		}
	}
	return ""
}

// WithMessage replaces the message of a failing rule.
func WithMessage(rule Rule, message string) Rule {
	return func(value string, form Fields) string {
		if rule(value, form) == "" {
			return ""
		}
		return message
	}
}

// OneOfWhen restricts value to the options listed for the current value of field.
// Values of field without an entry are not checked.
func OneOfWhen(field string, options map[string][]string) Rule {
	return func(value string, form Fields) string {
		allowed, ok := options[strings.TrimSpace(form[field])]
		if !ok || value == "" || contains(allowed, value) {
			return ""
		}
		return "Must be one of: " + strings.Join(allowed, ", ")
	}
}
