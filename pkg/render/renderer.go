// Package render defines the renderer contract shared by the HTML and TUI
// front ends and the registry they are discovered through.
package render

import (
	"context"

	"github.com/docuforge/docforms/pkg/descriptor"
)

// Form is the unit renderers consume: a document type plus its ordered field
// descriptors.
type Form struct {
	DocumentType string
	Fields       descriptor.List
}

// NewForm sorts the descriptor list into presentation order.
func NewForm(documentType string, list descriptor.List) Form {
	return Form{
		DocumentType: documentType,
		Fields:       list.Sorted(),
	}
}

// RenderOptions carry per-render session state so renderers stay stateless.
type RenderOptions struct {
	// Values pre-populates controls keyed by fieldName.
	Values map[string]any
	// Errors surfaces the session's current error set as inline feedback.
	Errors map[string]string
	// BusyField names the field with an auto-fill in flight, if any; at most
	// one indicator may be active at a time.
	BusyField string
}

// Renderer turns a form into output bytes for one medium.
type Renderer interface {
	// Name reports the registry identifier.
	Name() string
	// ContentType reports the media type of Render output.
	ContentType() string
	// Render produces the form in this renderer's medium.
	Render(ctx context.Context, form Form, opts RenderOptions) ([]byte, error)
}
