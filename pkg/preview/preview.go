// Package preview projects a form session's values map into a read-only
// document preview. The projection is purely derived: no state of its own,
// recomputed on every values change, and ordered exactly like the form pane
// so the two stay visually aligned.
package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/docuforge/docforms/pkg/descriptor"
)

// Entry is one visible line of the preview.
type Entry struct {
	FieldName string
	Label     string
	Value     string
}

// Projection is the renderable preview for one document.
type Projection struct {
	DocumentType string
	Entries      []Entry
}

// Empty reports whether no field has a visible value. Callers must render an
// explicit empty state in that case: "nothing filled yet" has to read
// differently from "this document type has no fields".
func (p Projection) Empty() bool {
	return len(p.Entries) == 0
}

// Project builds the preview from the ordered descriptor list and the current
// values map. Fields whose value is absent or blank after trimming are
// omitted entirely.
func Project(documentType string, list descriptor.List, values map[string]any) Projection {
	p := Projection{DocumentType: documentType}
	for _, d := range list.Sorted() {
		raw, ok := values[d.FieldName]
		if !ok {
			continue
		}
		value := strings.TrimSpace(stringify(raw))
		if value == "" {
			continue
		}
		p.Entries = append(p.Entries, Entry{
			FieldName: d.FieldName,
			Label:     label(d),
			Value:     FormatValue(d.Type, value),
		})
	}
	return p
}

// FormatValue applies type-specific display formatting. Dates render long
// form ("Friday, March 1, 2024"); everything else renders as entered.
func FormatValue(fieldType descriptor.FieldType, value string) string {
	switch fieldType {
	case descriptor.FieldTypeDate:
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			return value
		}
		return parsed.Format("Monday, January 2, 2006")
	case descriptor.FieldTypeText, descriptor.FieldTypeEmail,
		descriptor.FieldTypePhone, descriptor.FieldTypeTextarea,
		descriptor.FieldTypeSignature, descriptor.FieldTypeSelect,
		descriptor.FieldTypeNumber:
		return value
	default:
		return value
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func label(d descriptor.Descriptor) string {
	if d.Label != "" {
		return d.Label
	}
	return d.FieldName
}
