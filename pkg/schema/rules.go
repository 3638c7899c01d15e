package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind selects the coercion strategy a rule applies before checking bounds.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Permissive on purpose: digits, optional leading +, spaces, dashes and
	// parentheses. Anything stricter rejects real-world numbers.
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,}$`)
)

// Rule is the derived validation rule for one field. Rules are built once per
// descriptor list and never mutated afterwards.
type Rule struct {
	Field    string
	Label    string
	Kind     Kind
	Required bool

	// Bounds mirror the descriptor's dual-purpose minLength/maxLength:
	// character counts for string rules, value bounds for number rules.
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64

	Pattern    *regexp.Regexp
	PatternMsg string
}

// Validate checks one value against the rule and returns the first failing
// message, or "" when the value passes. Absent or blank values pass unless the
// rule is required.
func (r Rule) Validate(value any) string {
	switch r.Kind {
	case KindNumber:
		return r.validateNumber(value)
	case KindDate:
		return r.validateDate(stringValue(value))
	default:
		return r.validateString(stringValue(value))
	}
}

func (r Rule) validateString(value string) string {
	if strings.TrimSpace(value) == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return r.PatternMsg
	}
	// Bounds count characters, not bytes; byte length over-counts any
	// non-ASCII input.
	length := utf8.RuneCountInString(value)
	if r.MinLength != nil && length < *r.MinLength {
		return fmt.Sprintf("Minimum %d characters required", *r.MinLength)
	}
	if r.MaxLength != nil && length > *r.MaxLength {
		return fmt.Sprintf("Maximum %d characters allowed", *r.MaxLength)
	}
	return ""
}

func (r Rule) validateDate(value string) string {
	if strings.TrimSpace(value) == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err != nil {
		return "Enter a valid date"
	}
	return ""
}

// validateNumber coerces the value to a float before checking bounds.
// Required number fields carry no extra non-zero constraint; only absence of
// any value at all counts as missing.
func (r Rule) validateNumber(value any) string {
	num, ok, blank := coerceNumber(value)
	if blank {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	}
	if !ok {
		return "Enter a valid number"
	}
	if r.Min != nil && num < *r.Min {
		return fmt.Sprintf("Minimum value is %s", formatBound(*r.Min))
	}
	if r.Max != nil && num > *r.Max {
		return fmt.Sprintf("Maximum value is %s", formatBound(*r.Max))
	}
	return ""
}

func coerceNumber(value any) (num float64, ok, blank bool) {
	switch v := value.(type) {
	case nil:
		return 0, false, true
	case int:
		return float64(v), true, false
	case int64:
		return float64(v), true, false
	case float64:
		return v, true, false
	case float32:
		return float64(v), true, false
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false, false
		}
		return parsed, true, false
	default:
		return 0, false, false
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
