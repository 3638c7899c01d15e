package html

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/docuforge/docforms/pkg/autofill"
	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/render"
)

// renderField maps one descriptor plus session state into a bound control.
// The switch over FieldType is exhaustive on purpose: adding a type must not
// silently fall through to a text input.
func renderField(d descriptor.Descriptor, opts render.RenderOptions) (string, error) {
	value := currentValue(opts.Values, d.FieldName)
	errMsg := opts.Errors[d.FieldName]

	var control string
	var err error
	switch d.Type {
	case descriptor.FieldTypeTextarea:
		control = textareaControl(d, value)
	case descriptor.FieldTypeSelect:
		control, err = selectControl(d, value)
		if err != nil {
			return "", err
		}
	case descriptor.FieldTypeDate:
		control = inputControl(d, "date", "", value)
	case descriptor.FieldTypeNumber:
		control = numberControl(d, value)
	case descriptor.FieldTypeEmail:
		control = inputControl(d, "email", "email", value)
	case descriptor.FieldTypePhone:
		control = inputControl(d, "tel", "tel", value)
	case descriptor.FieldTypeText, descriptor.FieldTypeSignature:
		control = inputControl(d, "text", "text", value)
	default:
		return "", fmt.Errorf("unknown field type %q", d.Type)
	}

	return buildFieldMarkup(d, control, errMsg, opts.BusyField), nil
}

func buildFieldMarkup(d descriptor.Descriptor, control, errMsg, busyField string) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="df-field df-field-`)
	b.WriteString(html.EscapeString(string(d.Type)))
	if errMsg != "" {
		b.WriteString(` df-invalid`)
	}
	b.WriteString(`" data-field="`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString("\">\n")

	b.WriteString(`    <label for="df-`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(label(d)))
	if d.Required {
		b.WriteString(` *`)
	}
	b.WriteString("</label>\n")

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if autofill.Eligible(d.FieldName, d.Type) {
		writeAutofillTrigger(&b, d.FieldName, busyField)
	}

	if errMsg != "" {
		b.WriteString(`    <span class="df-error" data-validation="`)
		b.WriteString(html.EscapeString(d.FieldName))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(errMsg))
		b.WriteString("</span>\n")
	}

	if hint := strings.TrimSpace(d.HelpText); hint != "" {
		b.WriteString(`    <small class="df-help">`)
		b.WriteString(sanitizeHelpText(hint))
		b.WriteString("</small>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

// writeAutofillTrigger renders the generate affordance. Only one busy
// indicator may be active across the whole form; the session's busy field is
// the single source for it.
func writeAutofillTrigger(b *strings.Builder, fieldName, busyField string) {
	busy := busyField == fieldName
	b.WriteString(`    <button type="button" class="df-autofill" data-autofill="`)
	b.WriteString(html.EscapeString(fieldName))
	b.WriteString(`"`)
	if busyField != "" {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>`)
	if busy {
		b.WriteString(`Generating…`)
	} else {
		b.WriteString(`Auto-fill`)
	}
	b.WriteString("</button>\n")
	if busy {
		b.WriteString(`    <span class="df-busy" role="status">Generating a suggestion</span>` + "\n")
	}
}

func textareaControl(d descriptor.Descriptor, value string) string {
	var b strings.Builder
	b.WriteString(`<textarea id="df-`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`" rows="5"`)
	writePlaceholder(&b, d)
	writeLengthAttrs(&b, d)
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`</textarea>`)
	return b.String()
}

func selectControl(d descriptor.Descriptor, value string) (string, error) {
	options, err := d.OptionValues()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<select id="df-`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString("\">\n")
	b.WriteString(`<option value="">`)
	if d.Placeholder != "" {
		b.WriteString(html.EscapeString(d.Placeholder))
	} else {
		b.WriteString("Select an option")
	}
	b.WriteString("</option>\n")
	for _, option := range options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(option))
		b.WriteString(`"`)
		if option == value {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(option))
		b.WriteString("</option>\n")
	}
	b.WriteString(`</select>`)
	return b.String(), nil
}

// numberControl exposes the descriptor bounds as advisory min/max attributes;
// the validation schema stays authoritative.
func numberControl(d descriptor.Descriptor, value string) string {
	var b strings.Builder
	b.WriteString(`<input type="number" id="df-`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`"`)
	if d.MinLength != nil {
		b.WriteString(` min="`)
		b.WriteString(strconv.Itoa(*d.MinLength))
		b.WriteString(`"`)
	}
	if d.MaxLength != nil {
		b.WriteString(` max="`)
		b.WriteString(strconv.Itoa(*d.MaxLength))
		b.WriteString(`"`)
	}
	writePlaceholder(&b, d)
	writeValue(&b, value)
	b.WriteString(` />`)
	return b.String()
}

func inputControl(d descriptor.Descriptor, inputType, inputMode, value string) string {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(inputType)
	b.WriteString(`" id="df-`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(d.FieldName))
	b.WriteString(`"`)
	if inputMode != "" {
		b.WriteString(` inputmode="`)
		b.WriteString(inputMode)
		b.WriteString(`"`)
	}
	writePlaceholder(&b, d)
	writeLengthAttrs(&b, d)
	writeValue(&b, value)
	b.WriteString(` />`)
	return b.String()
}

func writePlaceholder(b *strings.Builder, d descriptor.Descriptor) {
	if d.Placeholder == "" {
		return
	}
	b.WriteString(` placeholder="`)
	b.WriteString(html.EscapeString(d.Placeholder))
	b.WriteString(`"`)
}

func writeLengthAttrs(b *strings.Builder, d descriptor.Descriptor) {
	if d.MinLength != nil {
		b.WriteString(` minlength="`)
		b.WriteString(strconv.Itoa(*d.MinLength))
		b.WriteString(`"`)
	}
	if d.MaxLength != nil {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(*d.MaxLength))
		b.WriteString(`"`)
	}
}

func writeValue(b *strings.Builder, value string) {
	if value == "" {
		return
	}
	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func currentValue(values map[string]any, fieldName string) string {
	if values == nil {
		return ""
	}
	v, ok := values[fieldName]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func label(d descriptor.Descriptor) string {
	if d.Label != "" {
		return d.Label
	}
	return d.FieldName
}
