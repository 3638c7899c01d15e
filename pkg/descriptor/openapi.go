package descriptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI derives a descriptor list from the JSON request body of one
// operation in an OpenAPI document. It lets document-type services publish a
// standard OpenAPI spec instead of the bespoke descriptor shape; only the
// subset of schema vocabulary with a descriptor counterpart is mapped.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (List, error) {
	if len(raw) == 0 {
		return nil, errors.New("descriptor: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("descriptor: load openapi document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("descriptor: openapi document has no paths")
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("descriptor: operation %q not found", operationID)
	}

	body := requestSchema(op)
	if body == nil {
		return nil, fmt.Errorf("descriptor: operation %q has no json request body", operationID)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make(List, 0, len(names))
	for idx, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		d, err := descriptorFromSchema(name, idx, ref.Value)
		if err != nil {
			return nil, err
		}
		_, d.Required = required[name]
		list = append(list, d)
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}
	return list, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func descriptorFromSchema(name string, order int, schema *openapi3.Schema) (Descriptor, error) {
	d := Descriptor{
		ID:        name,
		FieldName: name,
		Label:     labelFor(name, schema.Title),
		SortOrder: order,
		HelpText:  schema.Description,
	}

	switch {
	case len(schema.Enum) > 0:
		d.Type = FieldTypeSelect
		options := make([]string, 0, len(schema.Enum))
		for _, v := range schema.Enum {
			options = append(options, fmt.Sprint(v))
		}
		payload, err := json.Marshal(options)
		if err != nil {
			return Descriptor{}, fmt.Errorf("descriptor: encode enum for %q: %w", name, err)
		}
		d.Options = string(payload)
	case schema.Type != nil && (schema.Type.Is("number") || schema.Type.Is("integer")):
		d.Type = FieldTypeNumber
		// Descriptor bounds are value bounds for number fields.
		if schema.Min != nil {
			min := int(*schema.Min)
			d.MinLength = &min
		}
		if schema.Max != nil {
			max := int(*schema.Max)
			d.MaxLength = &max
		}
	default:
		d.Type = stringFieldType(schema.Format)
		if schema.MinLength > 0 {
			min := int(schema.MinLength)
			d.MinLength = &min
		}
		if schema.MaxLength != nil {
			max := int(*schema.MaxLength)
			d.MaxLength = &max
		}
	}

	return d, nil
}

func stringFieldType(format string) FieldType {
	switch format {
	case "email":
		return FieldTypeEmail
	case "phone", "tel":
		return FieldTypePhone
	case "date", "date-time":
		return FieldTypeDate
	case "textarea":
		return FieldTypeTextarea
	case "signature":
		return FieldTypeSignature
	default:
		return FieldTypeText
	}
}

func labelFor(name, title string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
