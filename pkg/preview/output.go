package preview

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Text renders the projection as plain text, one "Label: value" line per
// visible field.
func Text(p Projection) string {
	var b strings.Builder
	if p.DocumentType != "" {
		b.WriteString(p.DocumentType)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", len(p.DocumentType)))
		b.WriteString("\n")
	}
	if p.Empty() {
		b.WriteString("No fields filled yet.\n")
		return b.String()
	}
	for _, entry := range p.Entries {
		b.WriteString(entry.Label)
		b.WriteString(": ")
		b.WriteString(entry.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders the projection as a definition list, sanitized so multi-line
// values from textareas cannot smuggle markup into the preview pane.
func HTML(p Projection) string {
	var b strings.Builder
	b.WriteString(`<section class="df-preview">` + "\n")
	if p.DocumentType != "" {
		b.WriteString(`    <h3>`)
		b.WriteString(html.EscapeString(p.DocumentType))
		b.WriteString("</h3>\n")
	}
	if p.Empty() {
		b.WriteString(`    <p class="df-preview-empty">No fields filled yet.</p>` + "\n")
		b.WriteString("</section>\n")
		return b.String()
	}
	b.WriteString("    <dl>\n")
	for _, entry := range p.Entries {
		b.WriteString(`        <dt>`)
		b.WriteString(html.EscapeString(entry.Label))
		b.WriteString("</dt>\n")
		b.WriteString(`        <dd>`)
		b.WriteString(sanitizeValue(entry.Value))
		b.WriteString("</dd>\n")
	}
	b.WriteString("    </dl>\n")
	b.WriteString("</section>\n")
	return b.String()
}

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

func sanitizeValue(raw string) string {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	cleaned := valuePolicy.Sanitize(raw)
	return strings.ReplaceAll(cleaned, "\n", "<br/>")
}
