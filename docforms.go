// Package docforms generates, validates and previews business-document forms
// from server-supplied field descriptors. The root package re-exports the
// common entry points; the heavy lifting lives under pkg/.
package docforms

import (
	"context"

	"github.com/docuforge/docforms/pkg/descriptor"
	"github.com/docuforge/docforms/pkg/form"
	"github.com/docuforge/docforms/pkg/preview"
	"github.com/docuforge/docforms/pkg/render"
	"github.com/docuforge/docforms/pkg/renderers/html"
)

// Descriptor re-exports the field descriptor model.
type Descriptor = descriptor.Descriptor

// FieldType re-exports the closed field-type enumeration.
type FieldType = descriptor.FieldType

// Session re-exports the form controller.
type Session = form.Session

// Submission re-exports the submit/draft payload.
type Submission = form.Submission

// RenderOptions re-exports per-render session state.
type RenderOptions = render.RenderOptions

// NewSession builds a form session for one document type.
func NewSession(documentType string, list descriptor.List, options ...form.Option) (*form.Session, error) {
	return form.New(documentType, list, options...)
}

// DefaultRegistry returns a registry with the built-in HTML renderer wired.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

// GenerateHTML renders a descriptor list as a standalone HTML form. It is the
// simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, documentType string, list descriptor.List, opts render.RenderOptions) ([]byte, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.NewForm(documentType, list), opts)
}

// PreviewText projects a session into the plain-text document preview.
func PreviewText(sess *form.Session) string {
	return preview.Text(preview.Project(sess.DocumentType(), sess.Fields(), sess.Values()))
}

// PreviewHTML projects a session into the HTML document preview.
func PreviewHTML(sess *form.Session) string {
	return preview.HTML(preview.Project(sess.DocumentType(), sess.Fields(), sess.Values()))
}
