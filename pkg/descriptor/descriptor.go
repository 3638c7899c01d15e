package descriptor

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FieldType is the closed enum of field kinds a document type may declare.
// Rendering and validation both dispatch on it; switches over FieldType are
// kept exhaustive so a new type is a compile-visible change across the
// schema generator, the renderers, and the preview projection.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeEmail     FieldType = "email"
	FieldTypePhone     FieldType = "phone"
	FieldTypeDate      FieldType = "date"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeSignature FieldType = "signature"
	FieldTypeSelect    FieldType = "select"
	FieldTypeNumber    FieldType = "number"
)

// IsValid reports whether the type is one of the known field kinds.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeDate,
		FieldTypeTextarea, FieldTypeSignature, FieldTypeSelect, FieldTypeNumber:
		return true
	}
	return false
}

// Descriptor models one form field as published by a document-type service.
//
// MinLength/MaxLength are deliberately dual-purpose and keyed strictly off
// Type: for number fields they are numeric value bounds, for every other
// type they are character-count bounds. The wire shape is owned by upstream
// schema producers, so the names are preserved as-is.
type Descriptor struct {
	ID          string    `json:"id" yaml:"id"`
	FieldName   string    `json:"fieldName" yaml:"fieldName"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"fieldType" yaml:"fieldType"`
	Required    bool      `json:"isRequired" yaml:"isRequired"`
	SortOrder   int       `json:"sortOrder" yaml:"sortOrder"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty" yaml:"helpText,omitempty"`

	// Options carries the serialized choice list for select fields: a JSON
	// array of strings. It must be parsed via OptionValues before use.
	Options string `json:"options,omitempty" yaml:"options,omitempty"`

	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// OptionValues parses the Options payload into its choice strings. A
// malformed payload on a select field is a configuration error in upstream
// data, never a user error, so it is reported as a ConfigError for callers
// to surface loudly.
func (d Descriptor) OptionValues() ([]string, error) {
	raw := strings.TrimSpace(d.Options)
	if raw == "" {
		if d.Type == FieldTypeSelect {
			return nil, &ConfigError{Field: d.FieldName, Reason: "select field has no options"}
		}
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, &ConfigError{Field: d.FieldName, Reason: fmt.Sprintf("malformed options payload: %v", err)}
	}
	return values, nil
}

// List is an ordered set of descriptors for one document type.
type List []Descriptor

// Validate enforces the list invariants: every FieldName present and unique
// (it is the join key into the values map and the validation schema), and
// every Type a known kind.
func (l List) Validate() error {
	seen := make(map[string]struct{}, len(l))
	for _, d := range l {
		name := strings.TrimSpace(d.FieldName)
		if name == "" {
			return &ConfigError{Field: d.ID, Reason: "descriptor is missing fieldName"}
		}
		if _, dup := seen[name]; dup {
			return &ConfigError{Field: name, Reason: "duplicate fieldName"}
		}
		seen[name] = struct{}{}
		if !d.Type.IsValid() {
			return &ConfigError{Field: name, Reason: fmt.Sprintf("unknown fieldType %q", d.Type)}
		}
	}
	return nil
}

// Sorted returns a copy ordered by ascending SortOrder. Ties keep the list
// order; renderers and the preview projection share this ordering so the two
// panes stay aligned.
func (l List) Sorted() List {
	out := make(List, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// Find returns the descriptor for a field name.
func (l List) Find(fieldName string) (Descriptor, bool) {
	for _, d := range l {
		if d.FieldName == fieldName {
			return d, true
		}
	}
	return Descriptor{}, false
}
