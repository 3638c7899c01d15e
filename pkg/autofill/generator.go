// Package autofill defines the abstract generation capability a form session
// may use to propose field values. Generation is best-effort: failures never
// become validation errors, they only clear the session's busy state.
package autofill

import (
	"context"
	"strings"

	"github.com/docuforge/docforms/pkg/descriptor"
)

// Generator produces a proposed value for one field. Implementations are
// supplied by callers (a real generation backend, or MockGenerator in tests);
// they must respect ctx cancellation since sessions bound every call with a
// timeout.
type Generator interface {
	Generate(ctx context.Context, fieldName string, fieldType descriptor.FieldType) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, fieldName string, fieldType descriptor.FieldType) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, fieldName string, fieldType descriptor.FieldType) (string, error) {
	return f(ctx, fieldName, fieldType)
}

// freeTextHints are field-name fragments that suggest free-text content worth
// offering generation for.
var freeTextHints = []string{
	"description", "summary", "content", "details",
	"address", "company", "position",
}

// Eligible reports whether a field should carry the auto-fill affordance:
// only text-like types, and only when the name or type suggests free-text
// content.
func Eligible(fieldName string, fieldType descriptor.FieldType) bool {
	switch fieldType {
	case descriptor.FieldTypeTextarea:
		return true
	case descriptor.FieldTypeText, descriptor.FieldTypeEmail, descriptor.FieldTypeSelect:
		lowered := strings.ToLower(fieldName)
		for _, hint := range freeTextHints {
			if strings.Contains(lowered, hint) {
				return true
			}
		}
		return false
	case descriptor.FieldTypePhone, descriptor.FieldTypeDate,
		descriptor.FieldTypeSignature, descriptor.FieldTypeNumber:
		return false
	default:
		return false
	}
}
