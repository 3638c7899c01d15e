// Package template declares the template engine contract the HTML renderer
// consumes, keeping the engine choice swappable.
package template

import "io"

// TemplateRenderer renders named templates or inline template content with a
// data context. Implementations must be safe for concurrent use.
type TemplateRenderer interface {
	// RenderTemplate renders a template by name, appending the engine's
	// extension when missing.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString renders inline template content.
	RenderString(content string, data any, out ...io.Writer) (string, error)
	// GlobalContext seeds data available to every render.
	GlobalContext(data any) error
}
