package autofill

import (
	"context"
	"strings"
	"time"

	"github.com/docuforge/docforms/pkg/descriptor"
)

// MockGenerator returns canned strings keyed by field-name heuristics after a
// fixed delay. It exists for demos and tests; it is not a behavior any
// production session should depend on.
type MockGenerator struct {
	// Delay before a value is returned. Zero means respond immediately.
	Delay time.Duration
}

func (m MockGenerator) Generate(ctx context.Context, fieldName string, fieldType descriptor.FieldType) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return cannedValue(fieldName, fieldType), nil
}

func cannedValue(fieldName string, fieldType descriptor.FieldType) string {
	lowered := strings.ToLower(fieldName)
	switch {
	case fieldType == descriptor.FieldTypeEmail:
		return "contact@example.com"
	case strings.Contains(lowered, "company"):
		return "Acme Holdings Ltd."
	case strings.Contains(lowered, "address"):
		return "742 Market Street, Suite 500, San Francisco, CA 94103"
	case strings.Contains(lowered, "position"):
		return "Senior Operations Manager"
	case strings.Contains(lowered, "summary"):
		return "A concise summary of the agreement terms and the obligations of each party."
	case fieldType == descriptor.FieldTypeTextarea:
		return "This section describes the scope of the engagement, the responsibilities of each party, and the conditions under which the agreement may be terminated."
	default:
		return "Generated placeholder text"
	}
}
