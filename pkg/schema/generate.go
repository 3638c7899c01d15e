// Package schema derives per-field validation rules from a descriptor list.
// The output is read-only: it is built once when a descriptor list loads and
// rebuilt from scratch whenever the list changes.
package schema

import (
	"fmt"

	"github.com/docuforge/docforms/pkg/descriptor"
)

// Schema maps each fieldName to its derived rule. Exactly one rule exists per
// descriptor in the source list.
type Schema struct {
	rules map[string]Rule
	order []string
}

// Generate builds the validation schema for an ordered descriptor list.
func Generate(list descriptor.List) (*Schema, error) {
	if err := list.Validate(); err != nil {
		return nil, err
	}

	s := &Schema{
		rules: make(map[string]Rule, len(list)),
		order: make([]string, 0, len(list)),
	}
	for _, d := range list.Sorted() {
		s.rules[d.FieldName] = ruleFor(d)
		s.order = append(s.order, d.FieldName)
	}
	return s, nil
}

func ruleFor(d descriptor.Descriptor) Rule {
	rule := Rule{
		Field:    d.FieldName,
		Label:    labelOrName(d),
		Required: d.Required,
	}

	switch d.Type {
	case descriptor.FieldTypeEmail:
		rule.Kind = KindString
		rule.Pattern = emailPattern
		rule.PatternMsg = "Enter a valid email address"
	case descriptor.FieldTypePhone:
		rule.Kind = KindString
		rule.Pattern = phonePattern
		rule.PatternMsg = "Enter a valid phone number"
	case descriptor.FieldTypeDate:
		rule.Kind = KindDate
	case descriptor.FieldTypeNumber:
		rule.Kind = KindNumber
		if d.MinLength != nil {
			min := float64(*d.MinLength)
			rule.Min = &min
		}
		if d.MaxLength != nil {
			max := float64(*d.MaxLength)
			rule.Max = &max
		}
	case descriptor.FieldTypeText, descriptor.FieldTypeTextarea,
		descriptor.FieldTypeSignature, descriptor.FieldTypeSelect:
		rule.Kind = KindString
		rule.MinLength = d.MinLength
		rule.MaxLength = d.MaxLength
	default:
		// List.Validate rejects unknown types before rules are built.
		rule.Kind = KindString
		rule.MinLength = d.MinLength
		rule.MaxLength = d.MaxLength
	}

	return rule
}

// Rule returns the rule for a field name.
func (s *Schema) Rule(fieldName string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	rule, ok := s.rules[fieldName]
	return rule, ok
}

// Fields lists rule field names in ascending sort order.
func (s *Schema) Fields() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len reports the number of rules.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// ValidateField checks a single value against its field rule. Unknown field
// names are a programming error upstream and reported as such.
func (s *Schema) ValidateField(fieldName string, value any) (string, error) {
	rule, ok := s.Rule(fieldName)
	if !ok {
		return "", fmt.Errorf("schema: no rule for field %q", fieldName)
	}
	return rule.Validate(value), nil
}

// ValidateAll checks every rule against the values map and returns the
// message per failing field. An empty result means the values pass.
func (s *Schema) ValidateAll(values map[string]any) map[string]string {
	if s == nil {
		return nil
	}
	failures := make(map[string]string)
	for _, name := range s.order {
		if msg := s.rules[name].Validate(values[name]); msg != "" {
			failures[name] = msg
		}
	}
	return failures
}

func labelOrName(d descriptor.Descriptor) string {
	if d.Label != "" {
		return d.Label
	}
	return d.FieldName
}
